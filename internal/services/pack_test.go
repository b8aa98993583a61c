package services

import (
	"strings"
	"testing"
)

func validInput() PublishPackInput {
	return PublishPackInput{
		Title:         "Sci-Fi Worldbuilding",
		Prompt:        "teaser",
		FullPrompt:    "the full thing",
		Price:         4.99,
		PreviewImages: []string{"a.png", "b.png", "c.png"},
	}
}

func TestValidatePublishInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*PublishPackInput)
		wantErr string
	}{
		{
			name:   "valid input passes",
			mutate: func(in *PublishPackInput) {},
		},
		{
			name:    "blank title rejected",
			mutate:  func(in *PublishPackInput) { in.Title = "   " },
			wantErr: "title required",
		},
		{
			name:    "overlong title rejected",
			mutate:  func(in *PublishPackInput) { in.Title = strings.Repeat("x", MaxTitleLength+1) },
			wantErr: "at most",
		},
		{
			name:    "blank prompt rejected",
			mutate:  func(in *PublishPackInput) { in.Prompt = "" },
			wantErr: "prompt required",
		},
		{
			name:    "negative price rejected",
			mutate:  func(in *PublishPackInput) { in.Price = -1 },
			wantErr: "negative",
		},
		{
			name:    "too few preview images rejected",
			mutate:  func(in *PublishPackInput) { in.PreviewImages = []string{"a.png", "b.png"} },
			wantErr: "at least",
		},
		{
			name: "blank images do not count toward minimum",
			mutate: func(in *PublishPackInput) {
				in.PreviewImages = []string{"a.png", "  ", "b.png", ""}
			},
			wantErr: "at least",
		},
		{
			name: "too many preview images rejected",
			mutate: func(in *PublishPackInput) {
				in.PreviewImages = make([]string, MaxPreviewImages+1)
				for i := range in.PreviewImages {
					in.PreviewImages[i] = "img.png"
				}
			},
			wantErr: "at most",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			input := validInput()
			tc.mutate(&input)
			err := validatePublishInput(&input)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid input, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestValidatePublishInputDropsBlankImages(t *testing.T) {
	t.Parallel()

	input := validInput()
	input.PreviewImages = []string{"a.png", " ", "b.png", "", "c.png"}
	if err := validatePublishInput(&input); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(input.PreviewImages) != 3 {
		t.Fatalf("expected 3 images after trim, got %v", input.PreviewImages)
	}
}

func TestImageExtensionSniffing(t *testing.T) {
	t.Parallel()

	png := append([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, make([]byte, 16)...)
	jpg := append([]byte{0xff, 0xd8, 0xff, 0xe0}, make([]byte, 16)...)
	gif := append([]byte("GIF89a"), make([]byte, 16)...)

	tests := []struct {
		name    string
		data    []byte
		want    string
		wantErr bool
	}{
		{name: "png", data: png, want: ".png"},
		{name: "jpeg", data: jpg, want: ".jpg"},
		{name: "gif", data: gif, want: ".gif"},
		{name: "text rejected", data: []byte("just some text"), wantErr: true},
		{name: "pdf rejected", data: []byte("%PDF-1.4 something"), wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ext, err := imageExtension(tc.data)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected rejection, got ext %q", ext)
				}
				return
			}
			if err != nil {
				t.Fatalf("imageExtension: %v", err)
			}
			if ext != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, ext)
			}
		})
	}
}
