package storage

import (
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/anemettemadsen33/RentHub-sub010/config"
)

// Property images are stored on Cloudinary via signed uploads. Credentials
// come from the config loaded at startup, captured once here.

type cloudinarySettings struct {
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
}

var cloudinary cloudinarySettings

func InitializeCloudinary(cfg *config.Config) {
	cloudinary = cloudinarySettings{
		cloudName: cfg.CloudinaryCloudName,
		apiKey:    cfg.CloudinaryAPIKey,
		apiSecret: cfg.CloudinaryAPISecret,
		folder:    cfg.CloudinaryFolder,
	}
}

// UploadBase64Image uploads a base64 data URL (or raw base64) and returns
// the hosted URL, or "" on failure.
func UploadBase64Image(base64ImageSrc string, publicID string) string {
	if base64ImageSrc == "" {
		return ""
	}

	payload := base64ImageSrc
	if i := strings.Index(base64ImageSrc, ","); i != -1 {
		payload = base64ImageSrc[i+1:]
	}

	if cloudinary.cloudName == "" || cloudinary.apiKey == "" || cloudinary.apiSecret == "" {
		fmt.Printf("ERROR: Cloudinary is not configured\n")
		return ""
	}

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudinary.cloudName + "/image/upload"

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+payload)
	form.Add("api_key", cloudinary.apiKey)

	finalPublicID := publicID
	if cloudinary.folder != "" && publicID != "" {
		finalPublicID = cloudinary.folder + "/" + publicID
	}
	if finalPublicID != "" {
		form.Add("public_id", finalPublicID)
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)

	// Cloudinary signs the sorted request params with SHA1; the signature
	// must cover exactly what is sent.
	signatureString := "timestamp=" + timestamp + cloudinary.apiSecret
	if finalPublicID != "" {
		signatureString = fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, cloudinary.apiSecret)
	}
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))
	form.Add("signature", signature)

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		fmt.Printf("ERROR: Failed to create upload request: %v\n", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("ERROR: Upload request failed: %v\n", err)
		return ""
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		fmt.Printf("ERROR: Failed to read upload response: %v\n", err)
		return ""
	}

	if res.StatusCode != 200 {
		fmt.Printf("ERROR: Upload failed with status %d: %s\n", res.StatusCode, string(body))
		return ""
	}

	var cloudRes struct {
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	if err = json.Unmarshal(body, &cloudRes); err != nil {
		fmt.Printf("ERROR: Failed to parse upload response: %v\n", err)
		return ""
	}

	if cloudRes.Error.Message != "" {
		fmt.Printf("ERROR: Cloudinary error: %s\n", cloudRes.Error.Message)
		return ""
	}

	if cloudRes.SecureURL != "" {
		return cloudRes.SecureURL
	}
	return cloudRes.URL
}

// DeleteImage removes a previously uploaded image given its hosted URL.
func DeleteImage(imageURL string) bool {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return false
	}

	parts := strings.Split(imageURL, "/")
	if len(parts) < 2 {
		return false
	}
	lastPart := parts[len(parts)-1]
	publicID := strings.Split(lastPart, ".")[0]

	if cloudinary.cloudName == "" || cloudinary.apiKey == "" || cloudinary.apiSecret == "" {
		return false
	}

	finalPublicID := publicID
	if cloudinary.folder != "" {
		finalPublicID = cloudinary.folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", finalPublicID, timestamp, cloudinary.apiSecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	form := url.Values{}
	form.Add("public_id", finalPublicID)
	form.Add("api_key", cloudinary.apiKey)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	endpoint := "https://api.cloudinary.com/v1_1/" + cloudinary.cloudName + "/image/destroy"
	req, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Printf("ERROR: Deletion request failed: %v\n", err)
		return false
	}
	defer res.Body.Close()

	return res.StatusCode == 200
}
