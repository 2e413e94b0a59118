package model

// Package model defines domain data structures used across the app: download
// jobs, bootstrap and download event variants, and playlist entities.
// Event structs are sent over channels between worker goroutines and the UI;
// they are never mutated after send.
