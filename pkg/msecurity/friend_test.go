package msecurity

import "testing"

type fakeFriendKernel struct {
	sent []any
}

func (k *fakeFriendKernel) SendProtected(friend *Friend, message any, options map[string]any) (any, error) {
	k.sent = append(k.sent, message)
	return "delivered", nil
}

func TestFriend_SendProtectedRequiresConnection(t *testing.T) {
	kernel := &fakeFriendKernel{}
	friend := NewFriend(PKR("friend-1"), "wss://example.test", kernel)

	if _, err := friend.SendProtected("hi", nil); err == nil {
		t.Fatalf("expected SendProtected to fail before Connect")
	}

	if err := friend.Connect([]byte("secret")); err != nil {
		t.Fatalf("unexpected connect error: %v", err)
	}

	if !friend.Connected() {
		t.Fatalf("expected friend to report connected after Connect")
	}

	if friend.SessionKey() == "" {
		t.Fatalf("expected a non-empty session key after Connect")
	}

	if _, err := friend.SendProtected("hi", nil); err != nil {
		t.Fatalf("unexpected error once connected: %v", err)
	}

	if len(kernel.sent) != 1 || kernel.sent[0] != "hi" {
		t.Fatalf("expected the kernel to receive the forwarded message, got %v", kernel.sent)
	}
}

func TestFriend_DisconnectOnlyFlipsFlag(t *testing.T) {
	kernel := &fakeFriendKernel{}
	friend := NewFriend(PKR("friend-1"), "wss://example.test", kernel)

	if err := friend.Connect([]byte("secret")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := friend.SessionKey()

	friend.Disconnect()

	if friend.Connected() {
		t.Fatalf("expected Connected to be false after Disconnect")
	}

	if friend.SessionKey() != key {
		t.Fatalf("expected Disconnect to leave the session key untouched")
	}

	if _, err := friend.SendProtected("hi", nil); err == nil {
		t.Fatalf("expected SendProtected to fail once disconnected")
	}
}
