package pod

const (
	DefaultImage          = "172.30.1.1:5000/projectatomic-ci/papr"
	DefaultServiceAccount = "papr"
	DefaultToolingRepo    = "https://github.com/projectatomic/papr"
	DefaultToolingBranch  = "ocp"
	DefaultTokenSecret    = "github-token"
	DefaultTokenSecretKey = "token"
	DefaultConfigMap      = "papr-config"

	AppLabel      = "papr"
	ContainerName = "papr"
	ConfigVolume  = "config-mount"
	ConfigDir     = "/etc/papr"
	ConfigFile    = ConfigDir + "/config"
)

// Settings holds the cluster-side names and image the pod refers to.
// The zero value is not usable, start from DefaultSettings.
type Settings struct {
	Image          string `mapstructure:"image"`
	ServiceAccount string `mapstructure:"service-account"`
	ToolingRepo    string `mapstructure:"tooling-repo"`
	ToolingBranch  string `mapstructure:"tooling-branch"`
	TokenSecret    string `mapstructure:"token-secret"`
	TokenSecretKey string `mapstructure:"token-secret-key"`
	ConfigMap      string `mapstructure:"config-map"`
}

func DefaultSettings() Settings {
	return Settings{
		Image:          DefaultImage,
		ServiceAccount: DefaultServiceAccount,
		ToolingRepo:    DefaultToolingRepo,
		ToolingBranch:  DefaultToolingBranch,
		TokenSecret:    DefaultTokenSecret,
		TokenSecretKey: DefaultTokenSecretKey,
		ConfigMap:      DefaultConfigMap,
	}
}

// WithDefaults fills every empty field from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.Image == "" {
		s.Image = d.Image
	}
	if s.ServiceAccount == "" {
		s.ServiceAccount = d.ServiceAccount
	}
	if s.ToolingRepo == "" {
		s.ToolingRepo = d.ToolingRepo
	}
	if s.ToolingBranch == "" {
		s.ToolingBranch = d.ToolingBranch
	}
	if s.TokenSecret == "" {
		s.TokenSecret = d.TokenSecret
	}
	if s.TokenSecretKey == "" {
		s.TokenSecretKey = d.TokenSecretKey
	}
	if s.ConfigMap == "" {
		s.ConfigMap = d.ConfigMap
	}
	return s
}
