package gcs

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SignedURL mints a V2 signed URL for the given object. A non-empty
// contentType produces a PUT (upload) URL the caller must send the same
// Content-Type with; an empty contentType produces a GET (download) URL.
func (c *Client) SignedURL(bucket, object, contentType string, expiry time.Duration) (string, error) {
	if c == nil || c.serviceAccount == nil || c.serviceAccount.privateKey == nil {
		return "", errors.New("signed urls require service account credentials")
	}
	if bucket == "" {
		bucket = c.defaultBucket
	}
	if object == "" {
		return "", errors.New("object name is required")
	}
	if expiry <= 0 {
		return "", errors.New("expiry must be positive")
	}

	verb := http.MethodGet
	if contentType != "" {
		verb = http.MethodPut
	}

	expires := time.Now().Add(expiry).Unix()
	resource := "/" + bucket + "/" + object

	toSign := strings.Join([]string{
		verb,
		"", // Content-MD5 unused
		contentType,
		strconv.FormatInt(expires, 10),
		resource,
	}, "\n")

	hash := sha256.Sum256([]byte(toSign))
	sig, err := rsa.SignPKCS1v15(rand.Reader, c.serviceAccount.privateKey, crypto.SHA256, hash[:])
	if err != nil {
		return "", fmt.Errorf("signing url: %w", err)
	}

	q := url.Values{}
	q.Set("GoogleAccessId", c.serviceAccount.clientEmail)
	q.Set("Expires", strconv.FormatInt(expires, 10))
	q.Set("Signature", base64.StdEncoding.EncodeToString(sig))

	return fmt.Sprintf("https://storage.googleapis.com%s?%s", resource, q.Encode()), nil
}

// SignedUploadURL mints a PUT URL against the default bucket.
func (c *Client) SignedUploadURL(object, contentType string, expiry time.Duration) (string, error) {
	if contentType == "" {
		return "", errors.New("content type is required for uploads")
	}
	return c.SignedURL("", object, contentType, expiry)
}

// SignedDownloadURL mints a GET URL against the default bucket.
func (c *Client) SignedDownloadURL(object string, expiry time.Duration) (string, error) {
	return c.SignedURL("", object, "", expiry)
}

// PublicURL returns the unauthenticated object URL for public buckets.
func (c *Client) PublicURL(object string) string {
	if c == nil || object == "" {
		return ""
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.defaultBucket, object)
}
