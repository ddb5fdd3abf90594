package msecurity

import (
	"sync"
	"time"

	"github.com/LerianStudio/mdispatch/common"
	cn "github.com/LerianStudio/mdispatch/common/constant"
	"github.com/golang-jwt/jwt/v5"
)

// FriendKernel is the minimal surface a Friend needs to forward a
// protected send once connected.
type FriendKernel interface {
	SendProtected(friend *Friend, message any, options map[string]any) (any, error)
}

// Friend is a distinguishable Principal kind carrying a remote endpoint
// and, once connected, a session key. The session key is a real
// verifiable JWT, but the dispatch core never inspects its claims — it
// is treated as an opaque token, same as a PKR.
type Friend struct {
	mu sync.Mutex

	Principal  Principal
	PKR        PKR
	Endpoint   string
	sessionKey string
	connected  bool
	lastSeen   time.Time

	ms FriendKernel
}

// NewFriend constructs a disconnected Friend for endpoint, registered
// under pkr, forwarding protected sends through ms.
func NewFriend(pkr PKR, endpoint string, ms FriendKernel) *Friend {
	return &Friend{
		Principal: NewPrincipal(Kind("Friend")),
		PKR:       pkr,
		Endpoint:  endpoint,
		ms:        ms,
	}
}

// Connect mints a fresh session key signed with secret, flips connected
// and stamps lastSeen to now.
func (f *Friend) Connect(secret []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": f.Principal.ID,
		"iat": now.Unix(),
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return common.BuildError{
			EntityType: string(f.PKR),
			Title:      "Session Key Mint Failed",
			Message:    "failed to mint friend session key",
			Err:        err,
		}
	}

	f.sessionKey = signed
	f.connected = true
	f.lastSeen = now

	return nil
}

// Disconnect only flips the connected flag; the session key and
// lastSeen stamp are left as they were.
func (f *Friend) Disconnect() {
	f.mu.Lock()
	f.connected = false
	f.mu.Unlock()
}

// Connected reports whether the friend is currently connected.
func (f *Friend) Connected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.connected
}

// SessionKey returns the opaque session key minted by the last Connect,
// or "" if never connected.
func (f *Friend) SessionKey() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.sessionKey
}

// SendProtected requires the friend to be connected and to have a
// kernel reference; it forwards to ms.SendProtected(f, message,
// options).
func (f *Friend) SendProtected(message any, options map[string]any) (any, error) {
	if !f.Connected() {
		return nil, common.PermissionError{
			EntityType: string(f.PKR),
			Code:       cn.ErrFriendNotConnected.Error(),
			Title:      "Friend Not Connected",
			Message:    "friend is not connected",
		}
	}

	if f.ms == nil {
		return nil, common.PermissionError{
			EntityType: string(f.PKR),
			Code:       cn.ErrMustSupportSendProtected.Error(),
			Title:      "No MessageSystem",
			Message:    "must support sendProtected",
		}
	}

	return f.ms.SendProtected(f, message, options)
}
