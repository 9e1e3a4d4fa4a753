package calendar

import "errors"

// Sentinel kinds for calendar errors.
var (
	// ErrConfiguration means the round-date table is malformed. It is fatal at startup.
	ErrConfiguration = errors.New("calendar configuration error")
	ErrUnknownRound  = errors.New("unknown round")
	ErrNoQuarters    = errors.New("no quarters to classify")
)

// ErrUnknownQuarter is returned when a quarter id is not Q1..Q6.
var ErrUnknownQuarter = errors.New("unknown quarter")
