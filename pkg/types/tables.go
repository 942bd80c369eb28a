package types

// Standard table names for Vault.GetTable.
const (
	IdeasTable    = "ideas"
	ImagesTable   = "images"
	SettingsTable = "settings"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	IdeasTable,
	ImagesTable,
	SettingsTable,
}
