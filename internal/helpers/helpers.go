package helpers

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	CarsFolder = "cars"

	dateLayout = "2006-01-02"
)

// FormatPrice renders an amount as a currency string. Rounding to two
// decimals happens here and nowhere earlier.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate accepts the YYYY-MM-DD strings the booking form submits.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func StringTrim(s string) string {
	return strings.TrimSpace(s)
}

func RemoveDuplicates(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

func IsPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`\d`).MatchString(password)
	return hasLower && hasNumber
}

// UploadImages pushes car photos to Cloudinary and returns their hosted
// URLs in input order. Blank entries are skipped.
func UploadImages(ctx context.Context, cld *cloudinary.Cloudinary, imagePaths []string, folder string) ([]string, error) {
	var urls []string

	for _, filePath := range imagePaths {
		if strings.TrimSpace(filePath) == "" {
			continue
		}
		uploadResult, err := cld.Upload.Upload(ctx, filePath, uploader.UploadParams{
			Folder: folder,
			Tags:   []string{"driveaway"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to upload image %s: %v", filePath, err)
		}
		urls = append(urls, uploadResult.SecureURL)
	}

	return urls, nil
}
