package mapkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRenderer_Render_WritesArtifact tests the rendered document content
func TestRenderer_Render_WritesArtifact(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	renderer := NewRenderer(dir, nil, nil)

	// Act
	path, err := renderer.Render(37.0, -122.0, "Mountain View", "8.8.8.8")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "ip_map_8.8.8.8_") {
		t.Errorf("expected filename keyed by the IP, got %s", name)
	}
	if !strings.HasSuffix(name, ".html") {
		t.Errorf("expected an .html artifact, got %s", name)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected artifact on disk, got: %v", err)
	}
	doc := string(content)

	// One marker at the coordinates, city-scale zoom
	if !strings.Contains(doc, "setView([37, -122], 12)") {
		t.Error("expected map centered at (37, -122) with zoom 12")
	}
	if got := strings.Count(doc, "L.marker"); got != 1 {
		t.Errorf("expected exactly 1 marker, got %d", got)
	}
	if !strings.Contains(doc, "Mountain View") {
		t.Error("expected popup label in the document")
	}
	if !strings.Contains(doc, "<!DOCTYPE html>") {
		t.Error("expected a standalone HTML document")
	}
}

// TestRenderer_Render_DefaultLabel tests the fallback popup label
func TestRenderer_Render_DefaultLabel(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, nil, nil)

	path, err := renderer.Render(51.5, -0.12, "", "1.2.3.4")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected artifact on disk, got: %v", err)
	}
	if !strings.Contains(string(content), DefaultLabel) {
		t.Errorf("expected default label %q in the document", DefaultLabel)
	}
}

// TestRenderer_Render_UniqueFilenames verifies two renders for the same IP
// never collide on the same artifact
func TestRenderer_Render_UniqueFilenames(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, nil, nil)

	first, err := renderer.Render(37.0, -122.0, "a", "8.8.8.8")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	second, err := renderer.Render(37.0, -122.0, "b", "8.8.8.8")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if first == second {
		t.Errorf("expected unique filenames, both were %s", first)
	}
}

// TestRenderer_Render_EscapesLabel verifies provider-supplied labels
// cannot inject script into the document
func TestRenderer_Render_EscapesLabel(t *testing.T) {
	dir := t.TempDir()
	renderer := NewRenderer(dir, nil, nil)

	path, err := renderer.Render(0, 0, "<script>alert(1)</script>", "1.1.1.1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected artifact on disk, got: %v", err)
	}
	if strings.Contains(string(content), "<script>alert(1)</script>") {
		t.Error("expected the label to be escaped in the document")
	}
}

// TestRenderer_Render_BadDirectory tests the error path
func TestRenderer_Render_BadDirectory(t *testing.T) {
	renderer := NewRenderer(filepath.Join(t.TempDir(), "does", "not", "exist"), nil, nil)

	path, err := renderer.Render(37.0, -122.0, "x", "8.8.8.8")

	if err == nil {
		t.Error("expected error for unwritable directory, got nil")
	}
	if path != "" {
		t.Errorf("expected empty path on error, got %s", path)
	}
}
