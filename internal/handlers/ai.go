// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"gavel/internal/ai"
	"gavel/internal/store"
)

// descriptionSystemPrompt keeps the assistant on task for listing copy.
const descriptionSystemPrompt = "You write short, appealing descriptions for online auction listings. Reply with the description text only."

// AI serves the description generation endpoint.
type AI struct {
	registry *ai.Registry
	users    *store.UserStore
}

// NewAI builds the AI handler group.
func NewAI(registry *ai.Registry, users *store.UserStore) *AI {
	return &AI{registry: registry, users: users}
}

// GenerateDescription handles POST /api/ai/description. Provider failures
// surface as 502 so the client can tell them apart from its own mistakes.
func (a *AI) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r, a.users)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	var payload struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	title := strings.TrimSpace(payload.Title)
	if title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	prompt := fmt.Sprintf("I want to sell a %s. What should I write in the description within 50 words?", title)
	description, err := a.registry.Generate(r.Context(), descriptionSystemPrompt, prompt)
	if err != nil {
		slog.Error("description generation failed", "provider", a.registry.ActiveName(), "error", err)
		writeError(w, http.StatusBadGateway, "Description service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"description": strings.TrimSpace(description)})
}
