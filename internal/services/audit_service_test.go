package services

import (
	"context"
	"encoding/json"
	"testing"

	"budgetbuddy/internal/models"
	"budgetbuddy/internal/testutil"
)

func TestAuditLog(t *testing.T) {
	t.Run("records_entry", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateTestUser(t, db)
		svc := NewAuditService(db)

		svc.Log(context.Background(), AuditEntry{
			UserID:       user.ID,
			Action:       ActionCreateExpense,
			ResourceType: "expense",
			ResourceID:   42,
			IPAddress:    "127.0.0.1",
			Changes:      map[string]any{"amount": "3.50"},
		})

		var logs []models.AuditLog
		if err := db.Find(&logs).Error; err != nil {
			t.Fatalf("query audit logs: %v", err)
		}
		if len(logs) != 1 {
			t.Fatalf("expected 1 audit log, got %d", len(logs))
		}
		got := logs[0]
		if got.Action != ActionCreateExpense || got.ResourceID != 42 || got.UserID != user.ID {
			t.Errorf("unexpected audit log: %+v", got)
		}

		var changes map[string]any
		if err := json.Unmarshal([]byte(got.Changes), &changes); err != nil {
			t.Fatalf("changes should be JSON: %v", err)
		}
		if changes["amount"] != "3.50" {
			t.Errorf("expected amount change 3.50, got %v", changes["amount"])
		}
	})

	t.Run("nil_changes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateTestUser(t, db)
		svc := NewAuditService(db)

		svc.Log(context.Background(), AuditEntry{UserID: user.ID, Action: ActionLogin, ResourceType: "user", ResourceID: user.ID})

		var log models.AuditLog
		if err := db.First(&log).Error; err != nil {
			t.Fatalf("query audit log: %v", err)
		}
		if log.Changes != "" {
			t.Errorf("expected empty changes, got %q", log.Changes)
		}
	})

	t.Run("write_failure_is_swallowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewAuditService(db)

		if err := db.Migrator().DropTable(&models.AuditLog{}); err != nil {
			t.Fatalf("drop table: %v", err)
		}

		// Must not panic or block.
		svc.Log(context.Background(), AuditEntry{UserID: 1, Action: ActionDeleteExpense})
	})
}
