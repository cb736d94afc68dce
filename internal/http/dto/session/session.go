// Package session define los contratos del tracker de actividad.
package session

import "time"

type UpdateActivityRequest struct {
	UserID string `json:"userId"`
}

// InfoData expone el estado de inactividad: remainingTime va en segundos.
type InfoData struct {
	LastActivity  time.Time `json:"lastActivity"`
	RemainingTime int64     `json:"remainingTime"`
	Status        string    `json:"status"`
}

type InfoResponse struct {
	Success bool     `json:"success"`
	Data    InfoData `json:"data"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
