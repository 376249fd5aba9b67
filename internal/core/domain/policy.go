package domain

// Policy declares who may call a protected operation: a set of sufficient
// roles, plus an optional ownership exception letting callers act on their
// own record. The two axes combine with OR — either one authorizes.
type Policy struct {
	AllowedRoles []string
	AllowSelf    bool
}

// DenyReason distinguishes a missing/invalid identity from an identified
// caller lacking privilege.
type DenyReason string

const (
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyForbidden       DenyReason = "forbidden"
)

// Decision is the output of an authorization check. The zero value denies:
// nothing is ever allowed by default.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Evaluate applies a policy to validated claims. targetID is the numeric id
// of the resource being acted on; hasTarget is false for collection-level
// operations, where the ownership axis cannot apply.
func (p Policy) Evaluate(claims Claims, targetID int64, hasTarget bool) Decision {
	for _, role := range p.AllowedRoles {
		if claims.Role == role {
			return Allow()
		}
	}
	if p.AllowSelf && hasTarget && targetID == claims.UserID {
		return Allow()
	}
	return Deny(DenyForbidden)
}
