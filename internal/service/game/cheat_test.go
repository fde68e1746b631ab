package game

import (
	"testing"
	"time"
)

func TestOnCheatReport_ForwardedToModerator(t *testing.T) {
	ctx := newTestContext(t)
	ctx.ModeratorCh = make(chan ResponseWrapper, 8)

	addTestPlayer(ctx, "p1")

	reported := time.Now().Add(-time.Minute)

	onCheatReport(ctx, &CheatReportRequest{
		PlayerID:  "p1",
		Kind:      CHEAT_SCREENSHOT,
		Timestamp: reported,
	})

	select {
	case resp := <-ctx.ModeratorCh:
		if resp.RespType != RESP_CHEAT_ALERT {
			t.Fatalf("moderator expects a cheat alert, got %q", resp.RespType)
		}

		alert, ok := resp.Data.(CheatAlertResponse)
		if !ok {
			t.Fatalf("unexpected alert payload: %T", resp.Data)
		}

		if alert.PlayerID != "p1" || alert.Kind != CHEAT_SCREENSHOT {
			t.Fatalf("alert mismatch: %+v", alert)
		}

		if !alert.Timestamp.Equal(reported) {
			t.Fatalf("client timestamp must be preserved")
		}
	default:
		t.Fatalf("moderator received no alert")
	}
}

func TestOnCheatReport_DroppedWhenSafeModeOff(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Settings.SafeMode = false
	ctx.ModeratorCh = make(chan ResponseWrapper, 8)

	addTestPlayer(ctx, "p1")

	onCheatReport(ctx, &CheatReportRequest{PlayerID: "p1", Kind: CHEAT_BACKGROUND})

	select {
	case resp := <-ctx.ModeratorCh:
		t.Fatalf("safe_mode off must drop reports silently, got %q", resp.RespType)
	default:
	}
}

func TestOnCheatReport_UnknownKindDropped(t *testing.T) {
	ctx := newTestContext(t)
	ctx.ModeratorCh = make(chan ResponseWrapper, 8)

	addTestPlayer(ctx, "p1")

	onCheatReport(ctx, &CheatReportRequest{PlayerID: "p1", Kind: "telepathy"})

	select {
	case resp := <-ctx.ModeratorCh:
		t.Fatalf("unknown kinds must be dropped, got %q", resp.RespType)
	default:
	}
}

func TestOnCheatReport_UnknownPlayerDropped(t *testing.T) {
	ctx := newTestContext(t)
	ctx.ModeratorCh = make(chan ResponseWrapper, 8)

	onCheatReport(ctx, &CheatReportRequest{PlayerID: "ghost", Kind: CHEAT_POPUP})

	select {
	case resp := <-ctx.ModeratorCh:
		t.Fatalf("reports from unknown players must be dropped, got %q", resp.RespType)
	default:
	}
}

func TestOnCheatReport_DefaultsTimestamp(t *testing.T) {
	ctx := newTestContext(t)
	ctx.ModeratorCh = make(chan ResponseWrapper, 8)

	addTestPlayer(ctx, "p1")

	before := time.Now()

	onCheatReport(ctx, &CheatReportRequest{PlayerID: "p1", Kind: CHEAT_SPLITSCREEN})

	resp := <-ctx.ModeratorCh

	alert, ok := resp.Data.(CheatAlertResponse)
	if !ok {
		t.Fatalf("unexpected alert payload: %T", resp.Data)
	}

	if alert.Timestamp.Before(before) {
		t.Fatalf("missing timestamp must default to receipt time")
	}
}
