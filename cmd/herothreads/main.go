// herothreads es el CLI de administración: opera contra el API HTTP con
// un token de sesión admin.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	url := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, url, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		baseURL = envOr("HEROTHREADS_URL", "http://localhost:3000")
		token   = envOr("HEROTHREADS_TOKEN", "")
		out     = envOr("HEROTHREADS_OUT", "text")
	)

	root := &cobra.Command{
		Use:   "herothreads",
		Short: "CLI admin de Hero Threads",
	}
	root.PersistentFlags().StringVar(&baseURL, "api-url", baseURL, "URL base del API (env HEROTHREADS_URL)")
	root.PersistentFlags().StringVar(&token, "token", token, "token de sesión admin (env HEROTHREADS_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "formato de salida: json|text")

	cl := &client{HTTP: &http.Client{Timeout: 30 * time.Second}}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL = baseURL
		cl.Token = token
		cl.OutFormat = out
	}

	pingCmd := &cobra.Command{
		Use:   "ping",
		Short: "Chequea /api/health",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/api/health", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("health: status=%d body=%s", status, string(body))
			}
			cl.print(status, body)
			return nil
		},
	}

	var loginEmail, loginPassword string
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Autentica y muestra el token de sesión",
		RunE: func(cmd *cobra.Command, args []string) error {
			if loginEmail == "" || loginPassword == "" {
				return fmt.Errorf("faltan --email y --password")
			}
			body, _ := json.Marshal(map[string]string{"email": loginEmail, "password": loginPassword})
			status, resp, err := cl.do("POST", "/api/login", body)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("login: status=%d body=%s", status, string(resp))
			}
			var parsed struct {
				Token string `json:"token"`
			}
			if err := json.Unmarshal(resp, &parsed); err != nil || parsed.Token == "" {
				return fmt.Errorf("login: respuesta sin token")
			}
			fmt.Println(parsed.Token)
			return nil
		},
	}
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password")

	accountsCmd := &cobra.Command{Use: "accounts", Short: "Gestión de cuentas (admin)"}

	accountsListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las cuentas",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/api/accounts/", nil)
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}

	accountsGetCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Muestra una cuenta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/api/accounts/"+args[0], nil)
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}

	var newStatus string
	accountsSetStatusCmd := &cobra.Command{
		Use:   "set-status <id>",
		Short: "Activa o desactiva una cuenta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if newStatus != "active" && newStatus != "inactive" {
				return fmt.Errorf("--status debe ser active|inactive")
			}
			body, _ := json.Marshal(map[string]string{"status": newStatus})
			status, resp, err := cl.do("PUT", "/api/accounts/"+args[0], body)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			return nil
		},
	}
	accountsSetStatusCmd.Flags().StringVar(&newStatus, "status", "", "active|inactive")

	accountsDeleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina una cuenta",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("DELETE", "/api/accounts/"+args[0], nil)
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}

	accountsCmd.AddCommand(accountsListCmd, accountsGetCmd, accountsSetStatusCmd, accountsDeleteCmd)

	productsCmd := &cobra.Command{Use: "products", Short: "Gestión del catálogo"}

	productsListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista los productos",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/api/products/", nil)
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}

	var pName, pDescription, pImage string
	var pPrice float64
	productsCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Crea un producto",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]any{
				"name": pName, "description": pDescription, "price": pPrice, "image": pImage,
			})
			status, resp, err := cl.do("POST", "/api/products/", body)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			return nil
		},
	}
	productsCreateCmd.Flags().StringVar(&pName, "name", "", "nombre")
	productsCreateCmd.Flags().StringVar(&pDescription, "description", "", "descripción")
	productsCreateCmd.Flags().Float64Var(&pPrice, "price", 0, "precio")
	productsCreateCmd.Flags().StringVar(&pImage, "image", "", "URL de imagen")

	productsDeleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Elimina un producto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("DELETE", "/api/products/"+args[0], nil)
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}

	productsCmd.AddCommand(productsListCmd, productsCreateCmd, productsDeleteCmd)

	salesCmd := &cobra.Command{Use: "sales", Short: "Consulta de ventas (admin)"}
	salesListCmd := &cobra.Command{
		Use:   "list",
		Short: "Lista las ventas",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/api/sales/", nil)
			if err != nil {
				return err
			}
			cl.print(status, body)
			return nil
		},
	}
	salesCmd.AddCommand(salesListCmd)

	root.AddCommand(pingCmd, loginCmd, accountsCmd, productsCmd, salesCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
