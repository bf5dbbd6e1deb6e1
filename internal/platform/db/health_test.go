package db

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestHealthResponse_JSONShape(t *testing.T) {
	resp := healthResponse{
		Status: "healthy",
		Pool: PoolStats{
			TotalConns:    10,
			IdleConns:     5,
			AcquiredConns: 5,
			MaxConns:      20,
			AcquireCount:  100,
		},
	}

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"status":"healthy"`) {
		t.Errorf("missing status field: %s", s)
	}
	if !strings.Contains(s, `"total_conns":10`) {
		t.Errorf("missing pool stats: %s", s)
	}
	// A healthy response carries no error field.
	if strings.Contains(s, `"error"`) {
		t.Errorf("unexpected error field: %s", s)
	}
}

func TestHealthResponse_IncludesError(t *testing.T) {
	resp := healthResponse{Status: "unhealthy", Error: "connection refused"}

	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"error":"connection refused"`) {
		t.Errorf("missing error field: %s", b)
	}
}
