// Package types contains type definitions used for internal code contracts within this project.
//
// This package bridges the raw domain records held by the datastore with the externally
// shaped node types that the connection layer materializes for API consumers.
package types
