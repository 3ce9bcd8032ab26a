package util

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/h2non/bimg"

	"github.com/okorolev/pulseblog/internal/constant"
	"github.com/okorolev/pulseblog/internal/model"
)

var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// NormalizeAvatarDataURL validates an uploaded avatar data URL and re-encodes
// the payload as a 512x512 webp data URL, so stored avatars are always
// self-contained, bounded and in one format.
func NormalizeAvatarDataURL(dataUrl string, fieldName string) (string, error) {
	payload, err := decodeImageDataURL(dataUrl, fieldName)
	if err != nil {
		return "", err
	}

	output, err := bimg.NewImage(payload).Process(bimg.Options{
		Width:   512,
		Height:  512,
		Quality: 75,
		Type:    bimg.WEBP,
		Crop:    true,
		Embed:   false,
		Force:   true,
	})
	if err != nil {
		return "", &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Failed to process image. File may be corrupted or not a valid image",
			Param:   fieldName,
		}
	}

	return "data:image/webp;base64," + base64.StdEncoding.EncodeToString(output), nil
}

func decodeImageDataURL(dataUrl string, fieldName string) ([]byte, error) {
	rest, ok := strings.CutPrefix(dataUrl, "data:")
	if !ok {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Avatar must be a data URL",
			Param:   fieldName,
		}
	}

	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Avatar data URL is malformed",
			Param:   fieldName,
		}
	}

	mimeType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Avatar data URL must be base64 encoded",
			Param:   fieldName,
		}
	}

	if !AllowedImageTypes[mimeType] {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Invalid image type: %s. allowed types: jpeg, jpg, png, gif, webp", mimeType),
			Param:   fieldName,
		}
	}

	if base64.StdEncoding.DecodedLen(len(encoded)) > constant.MAX_AVATAR_BYTES {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: fmt.Sprintf("Image size exceeded %dMB limit", constant.MAX_AVATAR_BYTES/(1024*1024)),
			Param:   fieldName,
		}
	}

	payload, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &model.ValidationError{
			Code:    constant.ERR_VALIDATION_CODE,
			Message: "Avatar data URL payload is not valid base64",
			Param:   fieldName,
		}
	}

	return payload, nil
}
