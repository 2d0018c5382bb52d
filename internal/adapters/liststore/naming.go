package liststore

// NamingScheme carries the column names that differ between the two
// deployment targets. The legacy site grew its lists by hand (space-encoded
// column names, "Comments" for notes); the clean site uses regular names.
// The scheme is resolved once at startup and injected into the per-entity
// stores; nothing else in the codebase branches on the deployment mode.
type NamingScheme struct {
	// Sessions list
	SessionGroupID   string // lookup id column joining a session to its group
	SessionGroupName string // lookup display column for the group

	// Entries list
	EntrySessionID   string
	EntrySessionName string
	EntryProfileID   string
	EntryProfileName string
	EntryNotes       string // "Notes" vs the legacy "Comments"

	// Regulars list
	RegularProfileID string
	RegularGroupID   string

	// Records list
	RecordProfileID string
}

// CleanNames is the scheme for the current site's regular column names.
func CleanNames() NamingScheme {
	return NamingScheme{
		SessionGroupID:   "GroupLookupId",
		SessionGroupName: "Group",
		EntrySessionID:   "SessionLookupId",
		EntrySessionName: "Session",
		EntryProfileID:   "ProfileLookupId",
		EntryProfileName: "Profile",
		EntryNotes:       "Notes",
		RegularProfileID: "ProfileLookupId",
		RegularGroupID:   "GroupLookupId",
		RecordProfileID:  "ProfileLookupId",
	}
}

// LegacyNames is the scheme for the original site, whose columns kept the
// space-encoded names they were created with.
func LegacyNames() NamingScheme {
	return NamingScheme{
		SessionGroupID:   "Group_x0020_NameLookupId",
		SessionGroupName: "Group_x0020_Name",
		EntrySessionID:   "Session_x0020_DateLookupId",
		EntrySessionName: "Session_x0020_Date",
		EntryProfileID:   "Volunteer_x0020_NameLookupId",
		EntryProfileName: "Volunteer_x0020_Name",
		EntryNotes:       "Comments",
		RegularProfileID: "Volunteer_x0020_NameLookupId",
		RegularGroupID:   "Group_x0020_NameLookupId",
		RecordProfileID:  "Volunteer_x0020_NameLookupId",
	}
}

// SchemeFor resolves a mode string ("legacy" selects the legacy scheme,
// anything else the clean one).
func SchemeFor(mode string) NamingScheme {
	if mode == "legacy" {
		return LegacyNames()
	}
	return CleanNames()
}
