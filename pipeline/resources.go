package pipeline

// Resources declares repositories, containers and pipelines consumed by the
// pipeline.
type Resources struct {
	Repositories []*RepositoryResource `yaml:"repositories,omitempty"`
	Containers   []*ContainerResource  `yaml:"containers,omitempty"`
	Pipelines    []*PipelineResource   `yaml:"pipelines,omitempty"`
}

// RepositoryAliases lists the declared repository identifiers.
func (r *Resources) RepositoryAliases() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.Repositories))
	for _, repo := range r.Repositories {
		out = append(out, repo.Repository)
	}
	return out
}

type RepositoryResource struct {
	Repository string `yaml:"repository"`
	Type       string `yaml:"type"`
	Name       string `yaml:"name"`
	Ref        string `yaml:"ref,omitempty"`
	Endpoint   string `yaml:"endpoint,omitempty"`
}

// NewRepository declares a repository. repoType is git, github,
// githubenterprise or bitbucket.
func NewRepository(alias, repoType, name string) (*RepositoryResource, error) {
	if err := requireText("alias", alias); err != nil {
		return nil, err
	}
	if err := requireText("type", repoType); err != nil {
		return nil, err
	}
	if err := requireText("name", name); err != nil {
		return nil, err
	}
	return &RepositoryResource{Repository: alias, Type: repoType, Name: name}, nil
}

func Repository(alias, repoType, name string) *RepositoryResource {
	return Must(NewRepository(alias, repoType, name))
}

func (r *RepositoryResource) AtRef(ref string) *RepositoryResource {
	r.Ref = ref
	return r
}

type ContainerResource struct {
	Container string            `yaml:"container"`
	Image     string            `yaml:"image"`
	Endpoint  string            `yaml:"endpoint,omitempty"`
	Env       map[string]string `yaml:"env,omitempty"`
}

func NewContainer(alias, image string) (*ContainerResource, error) {
	if err := requireText("alias", alias); err != nil {
		return nil, err
	}
	if err := requireText("image", image); err != nil {
		return nil, err
	}
	return &ContainerResource{Container: alias, Image: image}, nil
}

func Container(alias, image string) *ContainerResource {
	return Must(NewContainer(alias, image))
}

type PipelineResource struct {
	Pipeline string `yaml:"pipeline"`
	Source   string `yaml:"source"`
	Project  string `yaml:"project,omitempty"`
	Branch   string `yaml:"branch,omitempty"`
	Trigger  bool   `yaml:"trigger,omitempty"`
}

func NewPipelineResource(alias, source string) (*PipelineResource, error) {
	if err := requireText("alias", alias); err != nil {
		return nil, err
	}
	if err := requireText("source", source); err != nil {
		return nil, err
	}
	return &PipelineResource{Pipeline: alias, Source: source}, nil
}
