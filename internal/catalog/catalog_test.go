package catalog

import "testing"

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(c.Categories) == 0 {
		t.Fatalf("expected categories, got none")
	}
	if c.AIModels[0] != AllSentinel {
		t.Fatalf("expected first ai model to be %q, got %q", AllSentinel, c.AIModels[0])
	}
	for _, m := range []string{"GPT-4", "Claude 3", "Gemini Pro"} {
		found := false
		for _, got := range c.AIModels {
			if got == m {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("ai model %q missing from catalog", m)
		}
	}
}
