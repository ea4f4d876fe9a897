package gemini

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient("test-key", "test-model", 5*time.Second)
	client.SetBaseURL(server.URL)
	return client, server
}

func geminiReply(text string) string {
	out := `"`
	for _, r := range text {
		switch r {
		case '"':
			out += `\"`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}
	out += `"`
	return `{"candidates":[{"content":{"parts":[{"text":` + out + `}]}}]}`
}

func TestGenerateKeywordsJSONArray(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiReply(`["Technology","Arts","Outdoors","Music","Debate"]`)))
	})
	defer server.Close()

	got, err := client.GenerateKeywords(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateKeywords failed: %v", err)
	}

	want := []string{"Technology", "Arts", "Outdoors", "Music", "Debate"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestGenerateKeywordsCodeFenced(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geminiReply("```json\n[\"Technology\",\"Arts\"]\n```")))
	})
	defer server.Close()

	got, err := client.GenerateKeywords(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("GenerateKeywords failed: %v", err)
	}
	if len(got) != 2 || got[0] != "Technology" {
		t.Errorf("unexpected keywords: %v", got)
	}
}

func TestGenerateKeywordsErrorStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	defer server.Close()

	if _, err := client.GenerateKeywords(context.Background(), "prompt"); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestGenerateKeywordsEmptyCandidates(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})
	defer server.Close()

	if _, err := client.GenerateKeywords(context.Background(), "prompt"); err == nil {
		t.Error("expected error for empty candidates")
	}
}

func TestGenerateKeywordsUnreachableServer(t *testing.T) {
	client := NewClient("test-key", "test-model", 100*time.Millisecond)
	client.SetBaseURL("http://127.0.0.1:1")

	if _, err := client.GenerateKeywords(context.Background(), "prompt"); err == nil {
		t.Error("expected error for unreachable server")
	}
}

func TestParseKeywordList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "json array",
			input: `["Technology","Community Service"]`,
			want:  []string{"Technology", "Community Service"},
		},
		{
			name:  "comma separated",
			input: "Technology, Community Service, Arts",
			want:  []string{"Technology", "Community Service", "Arts"},
		},
		{
			name:  "bulleted lines",
			input: "1. Technology\n2. Arts\n- Music",
			want:  []string{"Technology", "Arts", "Music"},
		},
		{
			name:  "fenced array",
			input: "```json\n[\"Gaming\"]\n```",
			want:  []string{"Gaming"},
		},
		{
			name:  "empty",
			input: "   \n ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseKeywordList(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}
