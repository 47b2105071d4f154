package session

import (
	"context"
	"encoding/json"
)

// Flash notice categories, matching the severity classes the UI styles on.
const (
	NoticeInfo    = "info"
	NoticeSuccess = "success"
	NoticeWarning = "warning"
	NoticeDanger  = "danger"
)

// Notice is a one-shot message shown on the next rendered page.
type Notice struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// Flash queues a notice for the session. Failures are swallowed: losing a
// notice must never fail the request that produced it.
func (m *Manager) Flash(ctx context.Context, sessionID, category, message string) {
	if sessionID == "" {
		return
	}
	data, err := json.Marshal(Notice{Message: message, Category: category})
	if err != nil {
		return
	}
	pipe := m.rdb.Pipeline()
	pipe.RPush(ctx, flashKey(sessionID), data)
	pipe.Expire(ctx, flashKey(sessionID), m.ttl)
	_, _ = pipe.Exec(ctx)
}

// PopFlashes drains and returns the session's pending notices, oldest first.
// Missing or malformed entries degrade to an empty slice.
func (m *Manager) PopFlashes(ctx context.Context, sessionID string) []Notice {
	if sessionID == "" {
		return nil
	}
	pipe := m.rdb.TxPipeline()
	rangeCmd := pipe.LRange(ctx, flashKey(sessionID), 0, -1)
	pipe.Del(ctx, flashKey(sessionID))
	if _, err := pipe.Exec(ctx); err != nil {
		return nil
	}

	var notices []Notice
	for _, raw := range rangeCmd.Val() {
		var n Notice
		if err := json.Unmarshal([]byte(raw), &n); err != nil {
			continue
		}
		notices = append(notices, n)
	}
	return notices
}

func flashKey(id string) string { return "flash:" + id }
