package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/devostorange/internal/application/dto"
	"github.com/jhoicas/devostorange/internal/application/ports"
	"github.com/jhoicas/devostorange/internal/domain"
	"github.com/jhoicas/devostorange/pkg/logger"
)

// LoginPath endpoint de login; un 401 que venga de aquí no cierra la sesión.
const LoginPath = dto.LoginPath

// HeaderRequestID cabecera de correlación enviada en cada request.
const HeaderRequestID = "X-Request-ID"

const maxBodyBytes = 4 << 20

// Options parámetros de construcción del cliente.
type Options struct {
	BaseURL    string
	BasePath   string        // prefijo de rutas de la SPA; el 401 navega a BasePath+"/login"
	Timeout    time.Duration // ignorado si HTTPClient != nil
	HTTPClient *http.Client
	Session    ports.SessionStore
	Navigator  ports.Navigator
	Logger     *logger.Logger
}

// Client cliente HTTP compartido hacia la API. Todo error que devuelve es *domain.APIError.
type Client struct {
	baseURL    string
	loginRoute string
	httpClient *http.Client
	session    ports.SessionStore
	navigator  ports.Navigator
	logger     *logger.Logger
}

var _ ports.Transport = (*Client)(nil)

// New crea el cliente.
func New(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		loginRoute: strings.TrimRight(opts.BasePath, "/") + "/login",
		httpClient: hc,
		session:    opts.Session,
		navigator:  opts.Navigator,
		logger:     log.Named("apiclient"),
	}
}

// BaseURL dirección base configurada.
func (c *Client) BaseURL() string { return c.baseURL }

// Do ejecuta un request JSON. body nil = sin cuerpo; out nil = respuesta descartada.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &domain.APIError{Message: fmt.Sprintf("serializar request: %v", err), Status: http.StatusInternalServerError}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &domain.APIError{Message: err.Error(), Status: http.StatusInternalServerError}
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)
	if c.session != nil {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Str("method", method).Str("path", path).Str("request_id", requestID).
			Dur("duration", time.Since(start)).Err(err).Msg("request sin respuesta")
		return &domain.APIError{Message: transportMessage(err), Status: http.StatusInternalServerError}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).
		Str("request_id", requestID).Dur("duration", time.Since(start)).Msg("request")
	if err != nil {
		return &domain.APIError{Message: fmt.Sprintf("leer respuesta: %v", err), Status: resp.StatusCode}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		if resp.StatusCode == http.StatusUnauthorized && !strings.Contains(path, LoginPath) {
			c.forceSignOut()
		}
		return decodeError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.APIError{Message: fmt.Sprintf("resposta inválida do servidor: %v", err), Status: http.StatusInternalServerError}
	}
	return nil
}

// forceSignOut limpia la sesión y lleva al login.
func (c *Client) forceSignOut() {
	if c.session != nil {
		if err := c.session.Clear(); err != nil {
			c.logger.Warn().Err(err).Msg("no se pudo limpiar la sesión")
		}
	}
	c.logger.Info().Str("route", c.loginRoute).Msg("sesión expirada")
	if c.navigator != nil {
		c.navigator.Navigate(c.loginRoute)
	}
}

type errorBody struct {
	Message string                     `json:"message"`
	Error   string                     `json:"error"`
	Errors  map[string]json.RawMessage `json:"errors"`
}

// decodeError arma el APIError a partir del cuerpo de error del servidor.
func decodeError(status int, raw []byte) *domain.APIError {
	apiErr := &domain.APIError{Status: status}
	var body errorBody
	if len(raw) > 0 && json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
		apiErr.Errors = fieldErrors(body.Errors)
	}
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("Request failed with status code %d", status)
	}
	return apiErr
}

// fieldErrors acepta {"campo": ["msg"]} o {"campo": "msg"}.
func fieldErrors(in map[string]json.RawMessage) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	for field, raw := range in {
		var list []string
		if err := json.Unmarshal(raw, &list); err == nil {
			out[field] = list
			continue
		}
		var one string
		if err := json.Unmarshal(raw, &one); err == nil {
			out[field] = []string{one}
		}
	}
	return out
}

func transportMessage(err error) string {
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Err != nil {
		return uerr.Err.Error()
	}
	return err.Error()
}
