package entity

// Commodity is a commodity known to the knowledge graph.
type Commodity struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Inventories int    `json:"inventories"`
}
