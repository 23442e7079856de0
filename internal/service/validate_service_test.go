package service

import (
	"strings"
	"testing"

	"github.com/anthanhphan/go-file-uploader/internal/config"
	"github.com/anthanhphan/go-file-uploader/internal/errdefs"
	"github.com/anthanhphan/go-file-uploader/internal/port"
	"github.com/anthanhphan/go-file-uploader/internal/service/mocks"
	"go.uber.org/mock/gomock"
)

func newTestService(maxSize int64, store port.FileStore) *FileServiceImpl {
	cfg := config.DefaultConfig()
	cfg.Upload.MaxRequestSize = maxSize
	return NewFileService(cfg, store)
}

func TestIsAllowedExtension(t *testing.T) {
	tests := []struct {
		fileName string
		want     bool
	}{
		{"report.pdf", true},
		{"REPORT.PDF", true},
		{"photo.jpg", true},
		{"photo.jpeg", true},
		{"img.png", true},
		{"data.csv", true},
		{"sheet.xls", true},
		{"letter.doc", true},
		{"archive.zip", false},
		{"notes.txt", false},
		{"noextension", false},
		{"trailingdot.", false},
		{"archive.tar.gz", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := isAllowedExtension(tt.fileName); got != tt.want {
			t.Errorf("isAllowedExtension(%q) = %v, want %v", tt.fileName, got, tt.want)
		}
	}
}

func TestValidateOrderAndShortCircuit(t *testing.T) {
	const maxSize = 5 * 1024 * 1024

	tests := []struct {
		name         string
		user         string
		fileName     string
		declaredSize int64
		setup        func(store *mocks.MockFileStore)
		wantKind     errdefs.Kind
		wantErr      bool
	}{
		{
			name:     "EmptyUserFailsFirst",
			user:     "",
			fileName: "",
			wantKind: errdefs.KindUserNotFound,
			wantErr:  true,
		},
		{
			name:     "EmptyFileName",
			user:     "alice",
			fileName: "",
			wantKind: errdefs.KindFileNotFound,
			wantErr:  true,
		},
		{
			// No store expectations: a format failure must never create
			// the user directory.
			name:     "BadFormatBeforeDirCreation",
			user:     "alice",
			fileName: "notes.txt",
			wantKind: errdefs.KindFileFormat,
			wantErr:  true,
		},
		{
			name:         "SizeBeforeDirCreation",
			user:         "alice",
			fileName:     "photo.jpg",
			declaredSize: 7 * 1024 * 1024,
			wantKind:     errdefs.KindSizeLimitExceeded,
			wantErr:      true,
		},
		{
			name:     "Duplicate",
			user:     "alice",
			fileName: "photo.jpg",
			setup: func(store *mocks.MockFileStore) {
				store.EXPECT().EnsureUserDir("alice").Return("/data/alice", nil)
				store.EXPECT().FileExists("alice", "photo.jpg").Return(true, nil)
			},
			wantKind: errdefs.KindFileExists,
			wantErr:  true,
		},
		{
			name:     "AllChecksPass",
			user:     "alice",
			fileName: "photo.jpg",
			setup: func(store *mocks.MockFileStore) {
				store.EXPECT().EnsureUserDir("alice").Return("/data/alice", nil)
				store.EXPECT().FileExists("alice", "photo.jpg").Return(false, nil)
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockFileStore(ctrl)
			if tt.setup != nil {
				tt.setup(store)
			}

			svc := newTestService(maxSize, store)
			err := svc.validator.validate(tt.user, tt.fileName, tt.declaredSize)

			if !tt.wantErr {
				if err != nil {
					t.Fatalf("expected success, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if got := errdefs.KindOf(err); got != tt.wantKind {
				t.Fatalf("expected kind %v, got %v (%v)", tt.wantKind, got, err)
			}
		})
	}
}

func TestCheckFileSizeMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestService(5*1024*1024, mocks.NewMockFileStore(ctrl))

	err := svc.validator.checkFileSize(7 * 1024 * 1024)
	if err == nil {
		t.Fatalf("expected size error, got nil")
	}
	want := "File size should not exceed 5MB and the size of current file is 7MB."
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestCheckDuplicateCreatesDirOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockFileStore(ctrl)
	store.EXPECT().EnsureUserDir("alice").Return("/data/alice", nil)
	store.EXPECT().FileExists("alice", "photo.jpg").Return(false, nil)

	svc := newTestService(5*1024*1024, store)
	if err := svc.validator.checkDuplicate("alice", "photo.jpg"); err != nil {
		t.Fatalf("expected fresh directory to pass, got: %v", err)
	}
}

func TestFormatErrorMessageListsFormats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := newTestService(5*1024*1024, mocks.NewMockFileStore(ctrl))

	err := svc.validator.checkFileFormat("virus.exe")
	if err == nil {
		t.Fatalf("expected format error, got nil")
	}
	if !strings.Contains(err.Error(), "PNG, JPEG, PDF, CSV, XLS and DOC") {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
