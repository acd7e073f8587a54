package hxkit

import (
	"context"
	"strings"
	"testing"
)

func TestRenderFlashesOOBEmpty(t *testing.T) {
	if result := RenderFlashesOOB(nil); result != "" {
		t.Errorf("RenderFlashesOOB(nil) = %q, want empty string", result)
	}
	if result := RenderFlashesOOB([]Flash{}); result != "" {
		t.Errorf("RenderFlashesOOB([]) = %q, want empty string", result)
	}
}

func TestRenderFlashesOOBSingle(t *testing.T) {
	result := RenderFlashesOOB([]Flash{
		{Level: FlashSuccess, Message: "Item saved successfully"},
	})

	want := `<div id="toasts" hx-swap-oob="beforeend">` +
		`<div class="toast toast-success" data-auto-dismiss="3000">Item saved successfully</div>` +
		`</div>`
	if result != want {
		t.Errorf("RenderFlashesOOB() =\n%s\nwant\n%s", result, want)
	}
}

func TestRenderFlashesOOBMultiple(t *testing.T) {
	result := RenderFlashesOOB([]Flash{
		{Level: FlashSuccess, Message: "First message"},
		{Level: FlashError, Message: "Second message"},
		{Level: FlashWarning, Message: "Third message"},
	})

	// Should have one container
	if strings.Count(result, `id="toasts"`) != 1 {
		t.Error("Should have exactly one toasts container")
	}

	// Should have three toast divs
	if strings.Count(result, `class="toast`) != 3 {
		t.Error("Should have three toast elements")
	}

	for _, level := range []string{"toast-success", "toast-error", "toast-warning"} {
		if !strings.Contains(result, level) {
			t.Errorf("Missing %s", level)
		}
	}
}

func TestRenderFlashesOOBHTMLEscaping(t *testing.T) {
	result := RenderFlashesOOB([]Flash{
		{Level: FlashError, Message: "<script>alert('xss')</script>"},
	})

	// Should NOT contain raw script tag
	if strings.Contains(result, "<script>") {
		t.Error("HTML should be escaped - found raw <script> tag")
	}
	if !strings.Contains(result, "&lt;script&gt;") {
		t.Error("HTML should be escaped - missing &lt;script&gt;")
	}
}

func TestRenderFlashesOOBLevelEscaping(t *testing.T) {
	result := RenderFlashesOOB([]Flash{{Level: "<bad>", Message: "test"}})

	if strings.Contains(result, "toast-<bad>") {
		t.Error("Level should be escaped")
	}
}

func TestFlashMessageIsNotLookedUp(t *testing.T) {
	env := NewEnv()
	env.Define("Saved", "hijacked")

	out, err := env.HTML(Flash{Level: FlashInfo, Message: "Saved"}.Form())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, ">Saved<") {
		t.Errorf("message was resolved against the env: %s", out)
	}
}

func TestToastContainer(t *testing.T) {
	var sb strings.Builder
	if err := ToastContainer().Render(context.Background(), &sb); err != nil {
		t.Fatal(err)
	}
	if sb.String() != `<div class="toast-container" id="toasts"></div>` {
		t.Errorf("ToastContainer() rendered %q", sb.String())
	}
}
