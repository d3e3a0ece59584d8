package evidence

import "testing"

func TestCanUpload(t *testing.T) {
	base := UploadContext{
		ActorIsAllocated: true,
		AuditStatus:      "In_Progress",
		Title:            "Blocked exit",
		FileName:         "exit.JPG",
		Size:             2048,
	}

	tests := []struct {
		name        string
		mutate      func(*UploadContext)
		wantAllowed bool
		wantReason  string
	}{
		{"valid", func(*UploadContext) {}, true, ""},
		{"pdf", func(c *UploadContext) { c.FileName = "report.pdf" }, true, ""},
		{"linked action on audit", func(c *UploadContext) { c.ActionID = "ACT-001"; c.ActionOnAudit = true }, true, ""},
		{"not allocated", func(c *UploadContext) { c.ActorIsAllocated = false }, false, "access denied"},
		{"closed audit", func(c *UploadContext) { c.AuditStatus = "Closed" }, false, "cannot add evidence to a Closed audit"},
		{"no title", func(c *UploadContext) { c.Title = "  " }, false, "evidence title is required"},
		{"executable", func(c *UploadContext) { c.FileName = "run.exe" }, false, `file type ".exe" not allowed`},
		{"empty file", func(c *UploadContext) { c.Size = 0 }, false, "file exit.JPG is empty"},
		{"exactly max size", func(c *UploadContext) { c.Size = MaxFileSize }, true, ""},
		{"too big", func(c *UploadContext) { c.Size = MaxFileSize + 1 }, false, "file exit.JPG exceeds the 10 MB limit"},
		{"foreign action", func(c *UploadContext) { c.ActionID = "ACT-009" }, false, "corrective action ACT-009 does not belong to this audit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := base
			tt.mutate(&ctx)
			result := CanUpload(ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestSlug(t *testing.T) {
	tests := map[string]string{
		"Blocked Exit #3":     "blocked-exit-3",
		"  leading/trailing ": "leading-trailing",
		"!!!":                 "file",
		"Öl-Leck":             "öl-leck",
	}
	for in, want := range tests {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}
