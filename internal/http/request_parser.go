// This file implements parsing and validation of transaction form
// submissions, including the optional receipt upload.

package http

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fintrack/internal/core"
)

// maxFormMemory bounds the in-memory portion of multipart parsing.
const maxFormMemory = 1 << 20 // 1 MiB, larger parts spill to disk

// parseTransactionForm extracts a transaction from a form submission.
// It accepts both multipart (with receipt upload) and urlencoded bodies.
// On failure it returns a ready-to-write error response.
func parseTransactionForm(r *http.Request, maxReceiptBytes int64) (core.Transaction, *HTMXResponseBuilder) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return core.Transaction{}, BadRequestError("Invalid form data")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return core.Transaction{}, BadRequestError("Invalid form data")
		}
	}

	desc := sanitizeInput(r.Form.Get("description"))
	if desc == "" {
		return core.Transaction{}, UnprocessableEntityError("Description is required")
	}
	if len(desc) > core.MaxDescriptionLen {
		return core.Transaction{}, UnprocessableEntityError(
			fmt.Sprintf("Description exceeds %d characters", core.MaxDescriptionLen))
	}

	cents, err := core.ParseDecimalToCents(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		return core.Transaction{}, UnprocessableEntityError("Invalid amount")
	}

	date, err := core.ParseDate(strings.TrimSpace(r.Form.Get("date")))
	if err != nil {
		return core.Transaction{}, UnprocessableEntityError("Invalid date, expected YYYY-MM-DD")
	}

	txType := core.TxType(strings.ToLower(strings.TrimSpace(r.Form.Get("type"))))
	if err := txType.Validate(); err != nil {
		return core.Transaction{}, UnprocessableEntityError("Type must be income or expense")
	}

	tx := core.Transaction{
		Description: desc,
		Amount:      core.Money{Cents: cents},
		Category:    sanitizeInput(r.Form.Get("category")),
		Date:        date,
		Type:        txType,
	}

	receipt, errResp := parseReceiptUpload(r, maxReceiptBytes)
	if errResp != nil {
		return core.Transaction{}, errResp
	}
	tx.Receipt = receipt

	return tx, nil
}

// parseReceiptUpload reads the optional receipt file part and returns it
// as a base64 data URI. An absent file is not an error.
func parseReceiptUpload(r *http.Request, maxReceiptBytes int64) (string, *HTMXResponseBuilder) {
	if r.MultipartForm == nil {
		return "", nil
	}

	file, _, err := r.FormFile("receipt")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", BadRequestError("Invalid receipt upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxReceiptBytes+1))
	if err != nil {
		return "", InternalServerError("Failed to read receipt")
	}
	if len(data) == 0 {
		return "", nil
	}
	if int64(len(data)) > maxReceiptBytes {
		return "", UnprocessableEntityError(
			fmt.Sprintf("Receipt exceeds the %d byte limit", maxReceiptBytes))
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", UnprocessableEntityError("Receipt must be an image")
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	return "data:" + mimeType + ";base64," + encoded, nil
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET is a convenience function for GET-only handlers.
func RequireGET(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodGet)
}
