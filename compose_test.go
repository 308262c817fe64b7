package dialect

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInvert(t *testing.T) {
	in := map[string]string{"color": "colour", "gray": "grey"}
	got := Invert(in)

	want := map[string]string{"colour": "color", "grey": "gray"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Invert() mismatch (-want +got):\n%s", diff)
	}

	// input untouched
	if diff := cmp.Diff(map[string]string{"color": "colour", "gray": "grey"}, in); diff != "" {
		t.Errorf("Invert() mutated its input:\n%s", diff)
	}
}

func TestInvert_CollisionIsDeterministic(t *testing.T) {
	in := map[string]string{"ax": "same", "bx": "same", "cx": "same"}
	for i := 0; i < 20; i++ {
		if got := Invert(in)["same"]; got != "cx" {
			t.Fatalf("Invert() collision winner = %q, want %q", got, "cx")
		}
	}
}

func TestInvert_Empty(t *testing.T) {
	if got := Invert(nil); len(got) != 0 {
		t.Errorf("Invert(nil) = %v, want empty", got)
	}
}

func TestCompose_Forward(t *testing.T) {
	dict, titles := Compose(testTables(), AmericanToBritish)

	if dict["parking lot"] != "car park" {
		t.Errorf("expected american-only entry, got %q", dict["parking lot"])
	}
	if dict["color"] != "colour" {
		t.Errorf("expected spelling entry, got %q", dict["color"])
	}
	if _, ok := dict["car park"]; ok {
		t.Error("british-only entry leaked into forward dictionary")
	}
	if titles["mr."] != "mr" {
		t.Errorf("expected title mr. -> mr, got %q", titles["mr."])
	}
}

func TestCompose_Reverse(t *testing.T) {
	dict, titles := Compose(testTables(), BritishToAmerican)

	if dict["car park"] != "parking lot" {
		t.Errorf("expected british-only entry, got %q", dict["car park"])
	}
	if dict["colour"] != "color" {
		t.Errorf("expected inverted spelling entry, got %q", dict["colour"])
	}
	if _, ok := dict["parking lot"]; ok {
		t.Error("american-only entry leaked into reverse dictionary")
	}
	if titles["mr"] != "mr." {
		t.Errorf("expected inverted title mr -> mr., got %q", titles["mr"])
	}
}

func TestCompose_SpellingOverridesVocabulary(t *testing.T) {
	tbl := &Tables{
		AmericanOnly: map[string]string{"color": "hue"},
		Spelling:     map[string]string{"color": "colour"},
	}
	dict, _ := Compose(tbl, AmericanToBritish)
	if dict["color"] != "colour" {
		t.Errorf("dict[color] = %q, want colour", dict["color"])
	}
}

func TestCompose_FreshMaps(t *testing.T) {
	tbl := testTables()
	dict, titles := Compose(tbl, AmericanToBritish)
	dict["color"] = "changed"
	titles["mr."] = "changed"

	if tbl.Spelling["color"] != "colour" || tbl.Titles["mr."] != "mr" {
		t.Error("Compose() returned maps aliasing the tables")
	}
}
