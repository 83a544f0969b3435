package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/go-calltune/internal/auth"
)

// createAuthCommands создает команды работы с аккаунтом
func (app *Application) createAuthCommands(ctx context.Context) []*cobra.Command {
	return []*cobra.Command{
		app.createRegisterCommand(ctx),
		app.createLoginCommand(ctx),
		app.createLogoutCommand(),
		app.createWhoamiCommand(ctx),
		app.createRecoverCommand(ctx),
	}
}

func (app *Application) createRegisterCommand(ctx context.Context) *cobra.Command {
	var firstName string
	var lastName string

	cmd := &cobra.Command{
		Use:   "register [email] [password]",
		Short: "Register a new account",
		Long:  `Register a new account with email and password. A confirmation email will be sent.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.register(ctx, args[0], args[1], firstName, lastName)
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "first name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name (required)")

	return cmd
}

func (app *Application) register(ctx context.Context, email, password, firstName, lastName string) error {
	session, err := app.Auth.SignUp(ctx, email, password, firstName, lastName)
	if err != nil {
		printAuthError(err)
		return err
	}

	// Сессия без токена означает, что требуется подтверждение по почте
	if session.AccessToken != "" {
		if err := app.Sessions.Store(*session, false); err != nil {
			return fmt.Errorf("ошибка сохранения сессии: %w", err)
		}
	}

	fmt.Printf("✅ Аккаунт создан: %s\n", email)
	fmt.Println("📧 Проверьте почту и подтвердите адрес по ссылке из письма")
	return nil
}

func (app *Application) createLoginCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "login [email] [password]",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.login(ctx, args[0], args[1])
		},
	}
}

func (app *Application) login(ctx context.Context, email, password string) error {
	session, err := app.Auth.SignIn(ctx, email, password)
	if err != nil {
		printAuthError(err)
		return err
	}

	// Проверяем статус подтверждения и кэшируем его вместе с сессией
	verified, err := app.Auth.IsVerified(ctx, session.AccessToken, session.UserID)
	if err != nil {
		verified = false
	}

	if err := app.Sessions.Store(*session, verified); err != nil {
		return fmt.Errorf("ошибка сохранения сессии: %w", err)
	}

	fmt.Printf("✅ Вход выполнен: %s\n", session.Email)
	if !verified {
		fmt.Println("⚠️  Email не подтвержден. Проверьте почту.")
	}
	return nil
}

func (app *Application) createLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the local session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := app.Sessions.Clear(); err != nil {
				return fmt.Errorf("ошибка удаления сессии: %w", err)
			}
			fmt.Println("✅ Выход выполнен")
			return nil
		},
	}
}

func (app *Application) createWhoamiCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current account",
		RunE: func(_ *cobra.Command, _ []string) error {
			return app.whoami(ctx)
		},
	}
}

func (app *Application) whoami(ctx context.Context) error {
	ok, session := auth.CheckAuth(ctx, app.Sessions, app.Auth)
	if !ok || session == nil {
		fmt.Println("ℹ️  Вы не вошли в аккаунт. Используйте 'calltune login'.")
		return nil
	}

	fmt.Printf("👤 Аккаунт: %s\n", session.Email)

	// Профиль запрашиваем удаленно; при недоступном бэкенде выводим только email
	user, err := app.Auth.User(ctx, session.AccessToken)
	if err == nil && (user.FirstName != "" || user.LastName != "") {
		fmt.Printf("   Имя: %s %s\n", user.FirstName, user.LastName)
	}
	return nil
}

func (app *Application) createRecoverCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "recover [email]",
		Short: "Request a password reset email",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := app.Auth.Recover(ctx, args[0]); err != nil {
				printAuthError(err)
				return err
			}
			fmt.Println("📧 Письмо для сброса пароля отправлено")
			return nil
		},
	}
}

// printAuthError выводит понятное пользователю сообщение об ошибке
func printAuthError(err error) {
	var authErr *auth.Error
	if errors.As(err, &authErr) {
		fmt.Printf("❌ %s\n", authErr.UserMessage())
		return
	}
	fmt.Printf("❌ Ошибка: %v\n", err)
}
