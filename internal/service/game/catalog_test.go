package game

import "testing"

func TestRoleCatalog_UniqueIDsAndValidTeams(t *testing.T) {
	teams := map[string]bool{
		TEAM_CITY:        true,
		TEAM_MAFIA:       true,
		TEAM_INDEPENDENT: true,
	}

	seen := make(map[string]bool)

	for _, role := range RoleCatalog {
		if role.ID == "" || role.Name == "" {
			t.Fatalf("catalog role must have an ID and a name: %+v", role)
		}

		if seen[role.ID] {
			t.Fatalf("duplicate role ID %q", role.ID)
		}
		seen[role.ID] = true

		if !teams[role.Team] {
			t.Fatalf("role %q has invalid team %q", role.ID, role.Team)
		}
	}
}

func TestFinalCardCatalog_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)

	for _, card := range FinalCardCatalog {
		if card.ID == "" || card.Name == "" {
			t.Fatalf("catalog card must have an ID and a name: %+v", card)
		}

		if seen[card.ID] {
			t.Fatalf("duplicate card ID %q", card.ID)
		}
		seen[card.ID] = true
	}
}

func TestFindRole(t *testing.T) {
	if role := FindRole("doctor"); role == nil || role.Team != TEAM_CITY {
		t.Fatalf("doctor must resolve to a city role, got %v", role)
	}

	if role := FindRole("nonexistent"); role != nil {
		t.Fatalf("unknown ID must resolve to nil, got %v", role)
	}
}

func TestFindFinalCard(t *testing.T) {
	if card := FindFinalCard("silence"); card == nil {
		t.Fatalf("silence must be in the catalog")
	}

	if card := FindFinalCard("nonexistent"); card != nil {
		t.Fatalf("unknown ID must resolve to nil, got %v", card)
	}
}

func TestDefaultSettings_ProduceValidSession(t *testing.T) {
	if _, err := NewGameContext("s", "m", DefaultSettings()); err != nil {
		t.Fatalf("default settings must produce a valid session, got: %v", err)
	}
}

func TestDefaultSettings_ReturnsCopy(t *testing.T) {
	first := DefaultSettings()
	first.SelectedRoles[0] = "tampered"

	second := DefaultSettings()

	if second.SelectedRoles[0] == "tampered" {
		t.Fatalf("default settings must not share backing arrays")
	}
}
