package extract

import "testing"

func TestRecords_DirectArray(t *testing.T) {
	recs := Records(`[{"event_name":"GopherCon"},{"event_name":"KubeCon"}]`, "opportunities")
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0]["event_name"] != "GopherCon" {
		t.Errorf("unexpected first record: %v", recs[0])
	}
}

func TestRecords_WrappedCollection(t *testing.T) {
	recs := Records(`{"opportunities":[{"event_name":"DevOpsDays"}]}`, "opportunities")
	if len(recs) != 1 || recs[0]["event_name"] != "DevOpsDays" {
		t.Fatalf("expected unwrapped collection, got %v", recs)
	}
}

func TestRecords_SingleObjectWrapped(t *testing.T) {
	recs := Records(`{"event_name":"Solo Summit"}`, "opportunities")
	if len(recs) != 1 || recs[0]["event_name"] != "Solo Summit" {
		t.Fatalf("expected single object wrapped in list, got %v", recs)
	}
}

func TestRecords_ArrayEmbeddedInProse(t *testing.T) {
	raw := `Sure! Here are the opportunities I found:

[{"event_name":"AI Summit"},{"event_name":"Data Conf"}]

Let me know if you need anything else.`
	recs := Records(raw, "opportunities")
	if len(recs) != 2 {
		t.Fatalf("expected 2 records from embedded array, got %d", len(recs))
	}
	if recs[1]["event_name"] != "Data Conf" {
		t.Errorf("unexpected second record: %v", recs[1])
	}
}

func TestRecords_ObjectEmbeddedInProse(t *testing.T) {
	raw := `The result is {"opportunities":[{"event_name":"Panel Night"}]} as requested.`
	recs := Records(raw, "opportunities")
	if len(recs) != 1 || recs[0]["event_name"] != "Panel Night" {
		t.Fatalf("expected 1 record from embedded object, got %v", recs)
	}
}

func TestRecords_CodeFenced(t *testing.T) {
	raw := "```json\n[{\"event_name\":\"Fenced Conf\"}]\n```"
	recs := Records(raw, "opportunities")
	if len(recs) != 1 || recs[0]["event_name"] != "Fenced Conf" {
		t.Fatalf("expected fenced JSON to parse, got %v", recs)
	}
}

func TestRecords_Garbage(t *testing.T) {
	for _, raw := range []string{"", "no json here", "[truncated", "{broken", "[{]}"} {
		recs := Records(raw, "opportunities")
		if recs == nil {
			t.Fatalf("Records(%q) returned nil, want empty list", raw)
		}
		if len(recs) != 0 {
			t.Errorf("Records(%q) = %v, want empty", raw, recs)
		}
	}
}

func TestRecords_SkipsNonObjectElements(t *testing.T) {
	recs := Records(`[{"event_name":"Real"}, "stray string", 42]`, "opportunities")
	if len(recs) != 1 {
		t.Fatalf("expected non-object elements skipped, got %v", recs)
	}
}
