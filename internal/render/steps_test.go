package render

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/conn-castle/recipegen/internal/schema"
)

func TestFromStepsReplaysSpec(t *testing.T) {
	steps, err := schema.DecodeSteps([]byte(`
- from_: debian:stretch
- install:
    name: foo
    method: source
    version: v1.0
- env:
    LANG: C.UTF-8
- run: echo done
`))
	if err != nil {
		t.Fatalf("DecodeSteps: %v", err)
	}

	r := newDocker(t)
	if err := FromSteps(r, steps); err != nil {
		t.Fatalf("FromSteps: %v", err)
	}
	got := r.Render()
	for _, want := range []string{
		"FROM debian:stretch",
		"&& git clone v1.0",
		`ENV LANG="C.UTF-8"`,
		"RUN echo done",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestFromStepsErrorNamesStep(t *testing.T) {
	steps := []schema.Step{
		{Kind: "from_", From: &schema.FromStep{Image: "debian:11"}},
		{Kind: "install", Install: &schema.InstallStep{Name: "nope", Version: "1.0"}},
	}
	err := FromSteps(newDocker(t), steps)
	if err == nil || !strings.HasPrefix(err.Error(), "step 1 (install): ") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStepsRoundTrip(t *testing.T) {
	r := newDocker(t)
	mustApply(t, r.FromImage("debian:11"))
	mustApply(t, r.Install("jq", "binaries", "1.6", nil))
	mustApply(t, r.Env("LANG", "C.UTF-8"))
	mustApply(t, r.Workdir("/srv"))
	mustApply(t, r.User("builder"))
	mustApply(t, r.Copy([]string{"app.py"}, "/srv/"))
	mustApply(t, r.Label("maintainer", "ops"))
	mustApply(t, r.Arg("CACHEBUST", "0"))
	mustApply(t, r.Entrypoint([]string{"jq"}))

	steps := Steps(r)
	for _, step := range steps {
		if step.Kind == schema.StepKindInstall {
			t.Fatal("install steps must expand at append time")
		}
	}

	replayed := newDocker(t)
	if err := FromSteps(replayed, steps); err != nil {
		t.Fatalf("FromSteps: %v", err)
	}
	if diff := cmp.Diff(r.Render(), replayed.Render()); diff != "" {
		t.Fatalf("round trip render mismatch (-orig +replayed):\n%s", diff)
	}
	if diff := cmp.Diff(steps, Steps(replayed)); diff != "" {
		t.Fatalf("round trip steps mismatch (-orig +replayed):\n%s", diff)
	}
}

func TestStepsRoundTripThroughYAML(t *testing.T) {
	r := newSingularity(t)
	mustApply(t, r.FromImage("docker://debian:11"))
	mustApply(t, r.Install("foo", "source", "v1.0", nil))
	mustApply(t, r.User("builder"))

	data, err := schema.MarshalSteps(Steps(r))
	if err != nil {
		t.Fatalf("MarshalSteps: %v", err)
	}
	decoded, err := schema.DecodeSteps(data)
	if err != nil {
		t.Fatalf("DecodeSteps: %v", err)
	}

	replayed := newSingularity(t)
	if err := FromSteps(replayed, decoded); err != nil {
		t.Fatalf("FromSteps: %v", err)
	}
	if r.Render() != replayed.Render() {
		t.Fatalf("yaml round trip mismatch:\n%s\nvs\n%s", r.Render(), replayed.Render())
	}
}
