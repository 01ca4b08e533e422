package model

// Package model contains the domain records shared by the service, repository and HTTP layers.
// Records carry JSON tags for the API but no persistence tags; list-valued columns are
// encoded by the repository.
