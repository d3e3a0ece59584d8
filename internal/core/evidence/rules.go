// Package evidence validates evidence uploads and derives their stored names.
package evidence

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/example/madar/internal/apperr"
)

// MaxFileSize is the largest accepted upload, in bytes.
const MaxFileSize = 10 * 1024 * 1024

// Folder is the storage folder evidence files are written under.
const Folder = "evidence"

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".bmp": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
	Kind    apperr.Kind
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return apperr.New(r.Kind, "%s", r.Reason)
}

func deny(kind apperr.Kind, format string, args ...any) GuardResult {
	return GuardResult{Allowed: false, Reason: fmt.Sprintf(format, args...), Kind: kind}
}

// UploadContext describes an evidence upload.
type UploadContext struct {
	ActorIsAllocated bool
	AuditStatus      string
	Title            string
	FileName         string
	Size             int64
	ActionID         string
	ActionOnAudit    bool
}

// CanUpload evaluates whether evidence can be attached to an audit.
// Rules:
// - Actor must be allocated to the audit's schedule
// - Audit must not be Closed or Cancelled
// - Title is required
// - Extension must be an allowed image, PDF, Word or Excel type
// - File must be non-empty and at most 10 MB
// - A linked corrective action must belong to the same audit
func CanUpload(ctx UploadContext) GuardResult {
	if !ctx.ActorIsAllocated {
		return deny(apperr.KindDenied, "access denied")
	}
	if ctx.AuditStatus == "Closed" || ctx.AuditStatus == "Cancelled" {
		return deny(apperr.KindInvalid, "cannot add evidence to a %s audit", ctx.AuditStatus)
	}
	if strings.TrimSpace(ctx.Title) == "" {
		return deny(apperr.KindInvalid, "evidence title is required")
	}
	ext := strings.ToLower(filepath.Ext(ctx.FileName))
	if !allowedExtensions[ext] {
		return deny(apperr.KindInvalid, "file type %q not allowed", ext)
	}
	if ctx.Size <= 0 {
		return deny(apperr.KindInvalid, "file %s is empty", ctx.FileName)
	}
	if ctx.Size > MaxFileSize {
		return deny(apperr.KindInvalid, "file %s exceeds the 10 MB limit", ctx.FileName)
	}
	if ctx.ActionID != "" && !ctx.ActionOnAudit {
		return deny(apperr.KindInvalid, "corrective action %s does not belong to this audit", ctx.ActionID)
	}
	return GuardResult{Allowed: true}
}

// Slug lowercases s and joins its alphanumeric runs with dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "file"
	}
	return out
}
