package plant

import "testing"

func TestCanSavePlant(t *testing.T) {
	base := SavePlantContext{
		ActorRole:        "Management",
		Name:             "North Works",
		Status:           "Active",
		Capacity:         500,
		AreaOwnerID:      "AO-001",
		AreaOwnerExists:  true,
		ManagementID:     "MGMT-001",
		ManagementExists: true,
	}

	tests := []struct {
		name        string
		mutate      func(*SavePlantContext)
		wantAllowed bool
		wantReason  string
	}{
		{"valid", func(*SavePlantContext) {}, true, ""},
		{"area owner cannot create", func(c *SavePlantContext) { c.ActorRole, c.ActorProfileID = "AreaOwner", "AO-001" }, false, "access denied"},
		{"owner edits own plant", func(c *SavePlantContext) {
			c.ActorRole, c.ActorProfileID, c.OwnerID = "AreaOwner", "AO-001", "AO-001"
		}, true, ""},
		{"owner of another plant", func(c *SavePlantContext) {
			c.ActorRole, c.ActorProfileID, c.OwnerID = "AreaOwner", "AO-002", "AO-001"
		}, false, "access denied"},
		{"owner reassigns ownership", func(c *SavePlantContext) {
			c.ActorRole, c.ActorProfileID, c.OwnerID, c.ReassignsOwnership = "AreaOwner", "AO-001", "AO-001", true
		}, false, "access denied"},
		{"auditor denied", func(c *SavePlantContext) { c.ActorRole, c.OwnerID = "Auditor", "AO-001" }, false, "access denied"},
		{"no name", func(c *SavePlantContext) { c.Name = "" }, false, "plant name is required"},
		{"bad status", func(c *SavePlantContext) { c.Status = "Closed" }, false, `invalid plant status "Closed"`},
		{"negative capacity", func(c *SavePlantContext) { c.Capacity = -1 }, false, "capacity must not be negative"},
		{"missing area owner", func(c *SavePlantContext) { c.AreaOwnerExists = false }, false, "area owner AO-001 not found"},
		{"missing management", func(c *SavePlantContext) { c.ManagementExists = false }, false, "management MGMT-001 not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := base
			tt.mutate(&ctx)
			result := CanSavePlant(ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanDeletePlant(t *testing.T) {
	tests := []struct {
		name        string
		ctx         DeletePlantContext
		wantAllowed bool
		wantReason  string
	}{
		{
			name:        "empty plant",
			ctx:         DeletePlantContext{ActorRole: "Management", PlantID: "PLANT-001"},
			wantAllowed: true,
		},
		{
			name:        "plant with equipment",
			ctx:         DeletePlantContext{ActorRole: "Management", PlantID: "PLANT-001", EquipmentCount: 2},
			wantAllowed: false,
			wantReason:  "cannot delete plant PLANT-001: has equipment (2). Remove equipment first",
		},
		{
			name:        "plant with schedules",
			ctx:         DeletePlantContext{ActorRole: "Management", PlantID: "PLANT-001", ScheduleCount: 1},
			wantAllowed: false,
			wantReason:  "cannot delete plant PLANT-001: has audit schedules (1)",
		},
		{
			name:        "auditor denied",
			ctx:         DeletePlantContext{ActorRole: "Auditor", PlantID: "PLANT-001"},
			wantAllowed: false,
			wantReason:  "access denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanDeletePlant(tt.ctx)
			if result.Allowed != tt.wantAllowed {
				t.Errorf("Allowed = %v, want %v", result.Allowed, tt.wantAllowed)
			}
			if !tt.wantAllowed && result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}
