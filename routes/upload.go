package routes

import (
	"fmt"
	"time"

	"github.com/kataras/iris/v12"

	"github.com/anemettemadsen33/RentHub-sub010/storage"
)

type uploadInput struct {
	Data     string `json:"data"`      // base64 data URL or raw base64
	PublicID string `json:"public_id"` // optional
}

// UploadImage handles base64 image upload for property photos.
func UploadImage(ctx iris.Context) {
	var in uploadInput
	if err := ctx.ReadJSON(&in); err != nil {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "invalid payload"})
		return
	}
	url := storage.UploadBase64Image(in.Data, in.PublicID)
	if url == "" {
		ctx.StopWithJSON(iris.StatusBadRequest, iris.Map{"error": "upload failed"})
		return
	}
	ctx.JSON(iris.Map{"url": url})
}

// uploadImages pushes any base64 payloads to the image host and passes
// through entries that are already URLs.
func uploadImages(images []string) []string {
	out := make([]string, 0, len(images))
	for i, img := range images {
		if img == "" {
			continue
		}
		if len(img) > 4 && img[:4] == "http" {
			out = append(out, img)
			continue
		}
		url := storage.UploadBase64Image(img, fmt.Sprintf("property_%d_%d", time.Now().UnixNano(), i))
		if url != "" {
			out = append(out, url)
		}
	}
	return out
}
