package utils

// Tabler is implemented by every database model.
type Tabler interface {
	TableName() string
}
