package args

import "testing"

func TestNegativeRegionCoordinateNotTreatedAsFlag(t *testing.T) {
	a, err := Parse("spaceshot", []string{"region", "-10,-20 30x40"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.HasRegion {
		t.Fatal("expected region to be parsed, not treated as a flag")
	}
	if a.Region.X != -10 || a.Region.Y != -20 {
		t.Fatalf("got region %+v", a.Region)
	}
}

func TestOutputModeRequiresName(t *testing.T) {
	_, err := Parse("spaceshot", []string{"output"})
	if err == nil {
		t.Fatal("expected error for missing output name")
	}
}

func TestLongOptionEqualsValue(t *testing.T) {
	a, err := Parse("spaceshot", []string{"output", "DP-1", "--output-file=~/shot.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.OutputFile != "~/shot.png" {
		t.Fatalf("got output file %q", a.OutputFile)
	}
}

func TestShortClusterWithTrailingValue(t *testing.T) {
	a, err := Parse("spaceshot", []string{"output", "DP-1", "-bco", "/tmp/x.png"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.Background || !a.Copy {
		t.Fatalf("expected -b and -c to be set, got %+v", a)
	}
	if a.OutputFile != "/tmp/x.png" {
		t.Fatalf("got output file %q", a.OutputFile)
	}
}

func TestUnknownModeSuggestsFlagOrder(t *testing.T) {
	_, err := Parse("spaceshot", []string{"--copy"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestInvalidRegionFormat(t *testing.T) {
	_, err := Parse("spaceshot", []string{"region", "garbage"})
	if err == nil {
		t.Fatal("expected error for invalid region")
	}
}
