package search

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestRegex_EscapesMetacharacters(t *testing.T) {
	re := Regex("a.b(c)")
	if re.Pattern != `a\.b\(c\)` {
		t.Errorf("pattern: got %q", re.Pattern)
	}
	if re.Options != "i" {
		t.Errorf("options: got %q, want i", re.Options)
	}
}

func TestAnyField(t *testing.T) {
	filter := AnyField("milk", "name", "description")
	or, ok := filter["$or"]
	if !ok {
		t.Fatal("missing $or")
	}
	arr, ok := or.(bson.A)
	if !ok {
		t.Fatalf("unexpected $or type %T", or)
	}
	if len(arr) != 2 {
		t.Errorf("clauses: got %d, want 2", len(arr))
	}
}
