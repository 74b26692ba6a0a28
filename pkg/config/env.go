package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gookit/color"
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Env is a koanf backed contracts.Config.
type Env struct {
	k *koanf.Koanf
}

// New loads envPath (if present) and then the process environment. With
// watchEnv set, callback runs whenever the file changes.
func New(envPath string, watchEnv bool, callback func()) *Env {
	app := &Env{k: koanf.New(".")}
	if envPath != "" {
		f := file.Provider(envPath)
		if _, err := os.Stat(envPath); err == nil {
			if err := app.k.Load(f, dotenv.Parser()); err != nil {
				color.Red.Println("Error loading .env file: " + err.Error())
			}
			if watchEnv {
				watch(app, f, envPath, callback)
			}
		} else {
			color.Yellow.Println("No .env file found at " + envPath)
		}
	}
	if err := app.k.Load(env.Provider("", ".", nil), nil); err != nil {
		color.Red.Println("Error loading environment variables: " + err.Error())
	}
	return app
}

func watch(app *Env, f *file.File, envPath string, callback func()) {
	err := f.Watch(func(event interface{}, err error) {
		if err != nil {
			log.Printf("watch error: %v", err)
			return
		}
		if err := app.k.Load(f, dotenv.Parser()); err != nil {
			log.Printf("reload %s: %v", envPath, err)
			return
		}
		if callback != nil {
			callback()
		}
	})
	if err != nil {
		log.Printf("watch %s: %v", envPath, err)
	}
}

// Env retrieves a raw value with an optional default.
func (app *Env) Env(envName string, defaultValue ...any) any {
	return app.Get(envName, defaultValue...)
}

// Add stores a value (or a nested map) under name.
func (app *Env) Add(name string, configuration any) {
	if err := app.k.Set(name, configuration); err != nil {
		panic(err)
	}
}

func (app *Env) Get(path string, defaultValue ...any) any {
	value := app.k.Get(path)
	if value == nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return nil
	}
	return value
}

func (app *Env) GetString(path string, defaultValue ...any) string {
	value := app.Get(path, defaultValue...)
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (app *Env) GetInt(path string, defaultValue ...any) int {
	value := app.Get(path, defaultValue...)
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
	}
	if len(defaultValue) > 0 {
		if d, ok := defaultValue[0].(int); ok {
			return d
		}
	}
	return 0
}

func (app *Env) GetDuration(path string, defaultValue ...any) time.Duration {
	value := app.Get(path, defaultValue...)
	if duration, ok := value.(time.Duration); ok {
		return duration
	}
	if strVal, ok := value.(string); ok {
		if duration, err := time.ParseDuration(strVal); err == nil {
			return duration
		}
	}
	if len(defaultValue) > 0 {
		switch d := defaultValue[0].(type) {
		case time.Duration:
			return d
		case string:
			if duration, err := time.ParseDuration(d); err == nil {
				return duration
			}
		}
	}
	return 0
}

func (app *Env) GetBool(path string, defaultValue ...any) bool {
	value := app.Get(path, defaultValue...)
	switch v := value.(type) {
	case bool:
		return v
	case string:
		if boolVal, err := strconv.ParseBool(v); err == nil {
			return boolVal
		}
	}
	if len(defaultValue) > 0 {
		if d, ok := defaultValue[0].(bool); ok {
			return d
		}
	}
	return false
}
