package pipeline

// Pool selects the agents a job runs on: a Microsoft hosted image or a
// named self-hosted pool with demands.
type Pool struct {
	Name    string   `yaml:"name,omitempty"`
	VMImage string   `yaml:"vmImage,omitempty"`
	Demands []string `yaml:"demands,omitempty"`
}

func NewHostedPool(vmImage string) (*Pool, error) {
	if err := requireText("vmImage", vmImage); err != nil {
		return nil, err
	}
	return &Pool{VMImage: vmImage}, nil
}

func HostedPool(vmImage string) *Pool {
	return Must(NewHostedPool(vmImage))
}

func NewNamedPool(name string, demands ...string) (*Pool, error) {
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	return &Pool{Name: name, Demands: demands}, nil
}

func NamedPool(name string, demands ...string) *Pool {
	return Must(NewNamedPool(name, demands...))
}
