package scoring

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []Answer
		wantErr error
	}{
		{
			name: "mixed shapes",
			raw:  `["A", ["B","C"], null]`,
			want: []Answer{Single("A"), Set("B", "C"), Absent()},
		},
		{
			name: "empty array",
			raw:  `[]`,
			want: []Answer{},
		},
		{name: "not an array", raw: `"A"`, wantErr: ErrInvalidAnswers},
		{name: "object element", raw: `[{"a":1}]`, wantErr: ErrInvalidAnswers},
		{name: "number element", raw: `[42]`, wantErr: ErrInvalidAnswers},
		{name: "null body", raw: `null`, wantErr: ErrInvalidAnswers},
		{name: "empty body", raw: ``, wantErr: ErrInvalidAnswers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnswers(json.RawMessage(tt.raw))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAnswers() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestAnswerMarshalRoundTrip(t *testing.T) {
	in := []Answer{Single("A"), Set("B", "C"), Absent()}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `["A",["B","C"],null]` {
		t.Errorf("unexpected encoding: %s", data)
	}

	out, err := ParseAnswers(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip mismatch: %#v vs %#v", in, out)
	}
}
