package steps

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/trip-logbook/backend/internal/integration/persistence/model"
)

// iAmLoggedInAs registers username on first use and makes it the caller of
// the following requests.
func (t *testContext) iAmLoggedInAs(username string) error {
	if user, ok := t.users[username]; ok {
		t.accessToken = user.accessToken
		return nil
	}

	email := username + "@example.com"
	payload, _ := json.Marshal(map[string]any{
		"username": username,
		"email":    email,
		"name":     username,
		"password": defaultPassword,
	})

	t.accessToken = ""
	if err := t.executeRequest(http.MethodPost, "/api/v1/auth/register", payload); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("failed to register %q: status %d (body: %v)", username, t.response.status, t.response.body)
	}

	token, _ := getFieldValue(t.response.body, "access_token").(string)
	rawID, _ := getFieldValue(t.response.body, "user.id").(string)
	id, err := uuid.Parse(rawID)
	if err != nil || token == "" {
		return fmt.Errorf("unexpected register response: %v", t.response.body)
	}

	t.users[username] = &testUser{
		id:          id,
		username:    username,
		email:       email,
		accessToken: token,
	}
	t.vars[username+".id"] = id.String()
	t.accessToken = token
	t.response = nil
	return nil
}

func (t *testContext) iAmNotLoggedIn() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) theUserHasTheRole(username, role string) error {
	user, ok := t.users[username]
	if !ok {
		return fmt.Errorf("user %q has not logged in yet", username)
	}
	return t.app.db.DbConn.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.UserRoleModel{UserID: user.id, Role: role}).Error
}
