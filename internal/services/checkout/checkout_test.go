package checkout

import "testing"

func TestPlanByID(t *testing.T) {
	for _, id := range []string{"free", "pro_monthly", "pro_yearly"} {
		p, ok := PlanByID(id)
		if !ok {
			t.Fatalf("expected plan %q to exist", id)
		}
		if p.ID != id {
			t.Fatalf("expected %q, got %q", id, p.ID)
		}
	}

	if _, ok := PlanByID("enterprise"); ok {
		t.Fatal("unknown plan must not resolve")
	}

	free, _ := PlanByID("free")
	if free.Amount != 0 {
		t.Fatalf("free plan must cost nothing, got %d", free.Amount)
	}
}

func TestWebhookSignatureRoundTrip(t *testing.T) {
	s := NewService("api-key", "private-key", "https://pay.example")

	body := []byte(`{"reference":"CHK-1","status":"PAID"}`)
	sig := s.sign(string(body))

	if !s.ValidateSignature(sig, body) {
		t.Fatal("expected own signature to validate")
	}
	if s.ValidateSignature(sig, []byte(`{"reference":"CHK-2"}`)) {
		t.Fatal("tampered body must not validate")
	}
	if s.ValidateSignature("deadbeef", body) {
		t.Fatal("wrong signature must not validate")
	}
}
