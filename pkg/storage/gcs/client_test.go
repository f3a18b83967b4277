package gcs

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T) (*Client, *rsa.PrivateKey) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate rsa key: %v", err)
	}

	return &Client{
		defaultBucket: "bucket",
		serviceAccount: &serviceAccountInfo{
			clientEmail: "signer@example.com",
			privateKey:  key,
		},
	}, key
}

func TestSignedURLUpload(t *testing.T) {
	t.Parallel()

	client, key := newTestClient(t)

	object := "media/products/file.png"
	contentType := "image/png"
	urlStr, err := client.SignedURL("bucket", object, contentType, 5*time.Minute)
	if err != nil {
		t.Fatalf("SignedURL returned error: %v", err)
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		t.Fatalf("parse signed url: %v", err)
	}

	if !strings.EqualFold(parsed.Host, "storage.googleapis.com") {
		t.Fatalf("unexpected host %s", parsed.Host)
	}
	if parsed.Path != "/bucket/"+object {
		t.Fatalf("unexpected path %s", parsed.Path)
	}

	values := parsed.Query()
	if got := values.Get("GoogleAccessId"); got != "signer@example.com" {
		t.Fatalf("unexpected GoogleAccessId %q", got)
	}

	expireParam := values.Get("Expires")
	if expireParam == "" {
		t.Fatalf("Expires missing")
	}
	expires, err := strconv.ParseInt(expireParam, 10, 64)
	if err != nil {
		t.Fatalf("parse expires: %v", err)
	}

	sigB64 := values.Get("Signature")
	if sigB64 == "" {
		t.Fatalf("signature missing")
	}
	sig, err := base64.StdEncoding.DecodeString(sigB64)
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	toSign := strings.Join([]string{
		http.MethodPut,
		"",
		contentType,
		strconv.FormatInt(expires, 10),
		"/bucket/" + object,
	}, "\n")
	hash := sha256.Sum256([]byte(toSign))
	if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, hash[:], sig); err != nil {
		t.Fatalf("signature does not verify: %v", err)
	}
}

func TestSignedURLDownloadVerb(t *testing.T) {
	t.Parallel()

	client, key := newTestClient(t)

	urlStr, err := client.SignedDownloadURL("media/products/file.png", time.Minute)
	if err != nil {
		t.Fatalf("SignedDownloadURL returned error: %v", err)
	}

	parsed, err := url.Parse(urlStr)
	if err != nil {
		t.Fatalf("parse signed url: %v", err)
	}
	values := parsed.Query()
	sig, err := base64.StdEncoding.DecodeString(values.Get("Signature"))
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}

	toSign := strings.Join([]string{
		http.MethodGet,
		"",
		"",
		values.Get("Expires"),
		"/bucket/media/products/file.png",
	}, "\n")
	hash := sha256.Sum256([]byte(toSign))
	if err := rsa.VerifyPKCS1v15(&key.PublicKey, crypto.SHA256, hash[:], sig); err != nil {
		t.Fatalf("signature does not verify: %v", err)
	}
}

func TestSignedURLValidation(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)

	if _, err := client.SignedURL("", "", "image/png", time.Minute); err == nil {
		t.Fatalf("expected error for empty object")
	}
	if _, err := client.SignedURL("", "obj", "image/png", 0); err == nil {
		t.Fatalf("expected error for zero expiry")
	}
	if _, err := client.SignedUploadURL("obj", "", time.Minute); err == nil {
		t.Fatalf("expected error for missing content type")
	}

	var nilClient *Client
	if _, err := nilClient.SignedURL("", "obj", "", time.Minute); err == nil {
		t.Fatalf("expected error for missing credentials")
	}
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)

	got := client.PublicURL("media/products/file.png")
	want := "https://storage.googleapis.com/bucket/media/products/file.png"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}
	if client.PublicURL("") != "" {
		t.Fatalf("expected empty url for empty object")
	}
}
