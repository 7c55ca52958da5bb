package handlers

import (
	"encoding/json"
	"testing"

	"designmecha-mes/models"
)

func TestPublishDoesNotBlockWithoutClients(t *testing.T) {
	hub := NewHub()

	// No Run loop draining; the buffer absorbs what it can and the rest is
	// dropped instead of wedging the request handler.
	for i := 0; i < 100; i++ {
		hub.Publish(PlanEvent{Type: "completed", PlanID: uint(i)})
	}
}

func TestPlanEventWireFormat(t *testing.T) {
	data, err := json.Marshal(PlanEvent{
		Type:     "completed",
		PlanID:   42,
		Status:   models.ProductionCompleted,
		Operator: "김반장",
	})
	if err != nil {
		t.Fatal(err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["type"] != "completed" || decoded["planId"] != float64(42) {
		t.Errorf("unexpected wire format: %s", data)
	}
	if decoded["status"] != "COMPLETED" || decoded["operator"] != "김반장" {
		t.Errorf("status/operator missing: %s", data)
	}

	// Empty optional fields stay off the wire.
	minimal, _ := json.Marshal(PlanEvent{Type: "deleted", PlanID: 1})
	var m map[string]interface{}
	json.Unmarshal(minimal, &m)
	if _, ok := m["status"]; ok {
		t.Errorf("empty status serialized: %s", minimal)
	}
}
