package monitor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"swapScope/internal/dex"
	"swapScope/internal/model"
)

func TestReplay(t *testing.T) {
	sink := &captureSink{}
	p := newTestPipeline(t, stubReserves{snap: model.ReserveSnapshot{}}, sink)

	swapTx := model.PendingTx{
		Hash: "0x1",
		To:   strings.ToLower(dex.V2RouterAddress.Hex()),
		Data: packV2Swap(t),
	}
	otherTx := model.PendingTx{
		Hash: "0x2",
		To:   "0x3333333333333333333333333333333333333333",
		Data: "0xdeadbeef",
	}

	var lines []string
	for _, tx := range []model.PendingTx{swapTx, otherTx} {
		raw, err := json.Marshal(tx)
		if err != nil {
			t.Fatalf("marshal fixture: %v", err)
		}
		lines = append(lines, string(raw))
	}
	lines = append(lines, "", "{not json}")

	stats, err := Replay(context.Background(), strings.NewReader(strings.Join(lines, "\n")), p, nil)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	// Blank lines are skipped entirely; the malformed line counts as read
	// but decodes nothing.
	if stats.Lines != 3 {
		t.Fatalf("lines = %d, want 3", stats.Lines)
	}
	if stats.Decoded != 1 {
		t.Fatalf("decoded = %d, want 1", stats.Decoded)
	}
	if len(sink.records) != 1 {
		t.Fatalf("records = %d, want 1", len(sink.records))
	}
}

func TestReplayCancelled(t *testing.T) {
	sink := &captureSink{}
	p := newTestPipeline(t, stubReserves{}, sink)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Replay(ctx, strings.NewReader("{}\n"), p, nil); err == nil {
		t.Fatal("cancelled replay must return the context error")
	}
}
