package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Session — данные сессии, которые сервер возвращает при входе и регистрации
type Session struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SignIn обменивает логин и пароль на сессию
// запрос не авторизуется: токена в этот момент ещё нет
func (c *Client) SignIn(ctx context.Context, email, password string) (Session, error) {
	const op = "backend.Client.SignIn"

	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var session Session
	if err := c.doJSON(ctx, http.MethodPost, "/users/signin", body, &session, false); err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

// SignUp регистрирует нового пользователя и сразу возвращает сессию
func (c *Client) SignUp(ctx context.Context, name, email, password string) (Session, error) {
	const op = "backend.Client.SignUp"

	body := struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Name: name, Email: email, Password: password}

	var session Session
	if err := c.doJSON(ctx, http.MethodPost, "/users/signup", body, &session, false); err != nil {
		return Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

// UpdateProfile меняет отображаемое имя текущего пользователя
// и, если передан непустой пароль, заодно и пароль
func (c *Client) UpdateProfile(ctx context.Context, name, password string) error {
	const op = "backend.Client.UpdateProfile"

	body := struct {
		Name     string `json:"name"`
		Password string `json:"password,omitempty"`
	}{Name: name, Password: password}

	if err := c.doJSON(ctx, http.MethodPost, "/users/update", body, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
