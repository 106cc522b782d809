package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Addr        string      `koanf:"addr"`
	Frontend    Frontend    `koanf:"frontend"`
	Database    Database    `koanf:"db"`
	Store       Store       `koanf:"store"`
	Storage     Storage     `koanf:"storage"`
	Diary       Diary       `koanf:"diary"`
	Weather     Weather     `koanf:"weather"`
	Geo         Geo         `koanf:"geo"`
	Placeholder Placeholder `koanf:"placeholder"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Store configures the local record store (JSON arrays on disk).
// MaxBytes of 0 means no quota.
type Store struct {
	Dir      string `koanf:"dir"`
	MaxBytes int    `koanf:"maxbytes"`
}

// Storage configures diary image storage. Uploaded files are written under
// Dir and served back under PublicBaseURL.
type Storage struct {
	Dir           string `koanf:"dir"`
	PublicBaseURL string `koanf:"publicbaseurl"`
}

// Diary selects the record of truth for diary posts: "local" (record store)
// or "remote" (database + image storage).
type Diary struct {
	Variant string `koanf:"variant"`
}

type Weather struct {
	APIKey  string `koanf:"apikey"`
	BaseURL string `koanf:"baseurl"`
}

type Geo struct {
	BaseURL string `koanf:"baseurl"`
}

type Placeholder struct {
	BaseURL string `koanf:"baseurl"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "gimyo",
			Pass:   "",
			Name:   "gimyo",
			Schema: "gimyo",
		},
		Store: Store{
			Dir:      "data",
			MaxBytes: 0,
		},
		Storage: Storage{
			Dir:           "storage/diary_images",
			PublicBaseURL: "/images",
		},
		Diary: Diary{
			Variant: "local",
		},
		Weather: Weather{
			BaseURL: "https://api.openweathermap.org/data/2.5",
		},
		Geo: Geo{
			BaseURL: "https://nominatim.openstreetmap.org",
		},
		Placeholder: Placeholder{
			BaseURL: "https://api.thecatapi.com/v1",
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "GIMYO_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "GIMYO_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
