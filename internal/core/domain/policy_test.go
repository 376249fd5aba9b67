package domain

import "testing"

func TestPolicy_Evaluate(t *testing.T) {
	readUser := Policy{AllowedRoles: []string{RoleAdmin, RoleSupervisor}, AllowSelf: true}
	listUsers := Policy{AllowedRoles: []string{RoleAdmin}}

	usuario7 := Claims{UserID: 7, Role: RoleUsuario}
	admin := Claims{UserID: 1, Role: RoleAdmin}

	cases := []struct {
		name      string
		policy    Policy
		claims    Claims
		targetID  int64
		hasTarget bool
		allowed   bool
	}{
		{"usuario reads own record", readUser, usuario7, 7, true, true},
		{"usuario reads another record", readUser, usuario7, 8, true, false},
		{"admin reads own record", readUser, admin, 1, true, true},
		{"admin reads another record", readUser, admin, 8, true, true},
		{"supervisor reads another record", readUser, Claims{UserID: 3, Role: RoleSupervisor}, 8, true, true},
		{"usuario lists users", listUsers, usuario7, 0, false, false},
		{"admin lists users", listUsers, admin, 0, false, true},
		{"self axis never applies without a target", readUser, usuario7, 0, false, false},
		{"self axis disabled", listUsers, usuario7, 7, true, false},
		{"unknown role denied", readUser, Claims{UserID: 9, Role: "ghost"}, 8, true, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision := tc.policy.Evaluate(tc.claims, tc.targetID, tc.hasTarget)
			if decision.Allowed != tc.allowed {
				t.Fatalf("expected allowed=%v, got %+v", tc.allowed, decision)
			}
			if !decision.Allowed && decision.Reason != DenyForbidden {
				t.Fatalf("denials from Evaluate must be forbidden, got %q", decision.Reason)
			}
		})
	}
}

func TestDecision_ZeroValueDenies(t *testing.T) {
	var decision Decision
	if decision.Allowed {
		t.Fatalf("zero-value decision must deny")
	}
}
