package salon

import "time"

// ===============================
// Connection / Session Status
// ===============================

type ConnectionStatus string

const (
	ConnectionPending      ConnectionStatus = "pending"
	ConnectionConnected    ConnectionStatus = "connected"
	ConnectionDisconnected ConnectionStatus = "disconnected"
	ConnectionExpired      ConnectionStatus = "expired"
)

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionScanned   SessionStatus = "scanned"
	SessionConnected SessionStatus = "connected"
	SessionExpired   SessionStatus = "expired"
)

// QRSessionTTL is how long an issued QR code stays scannable.
const QRSessionTTL = 5 * time.Minute

// LiveSessionStatuses are the states in which a QR code can still be used.
var LiveSessionStatuses = []SessionStatus{SessionActive, SessionScanned}
