package domain

// Resource is one Kubernetes document from a manifest file. The raw tree is
// kept as parsed; accessors below are the only way rules look inside it.
type Resource struct {
	Raw map[string]any
}

// Kind returns the resource kind, or "" when absent.
func (r Resource) Kind() string {
	s, _ := r.Raw["kind"].(string)
	return s
}

// Name returns metadata.name, defaulting to "unknown" like the rest of the
// diagnostics when a manifest leaves it out.
func (r Resource) Name() string {
	if name, ok := r.metadata()["name"].(string); ok && name != "" {
		return name
	}
	return "unknown"
}

// Namespace returns metadata.namespace, defaulting to "default".
func (r Resource) Namespace() string {
	if ns, ok := r.metadata()["namespace"].(string); ok && ns != "" {
		return ns
	}
	return "default"
}

// Spec returns the resource spec mapping, never nil.
func (r Resource) Spec() map[string]any {
	m, _ := r.Raw["spec"].(map[string]any)
	if m == nil {
		return map[string]any{}
	}
	return m
}

// Containers returns the container list for workload resources: directly
// under spec for a Pod, under the pod template for Deployment, StatefulSet
// and DaemonSet.
func (r Resource) Containers() []map[string]any {
	spec := r.Spec()
	if r.Kind() != "Pod" {
		tmpl, _ := spec["template"].(map[string]any)
		spec, _ = tmpl["spec"].(map[string]any)
	}
	raw, _ := spec["containers"].([]any)
	var containers []map[string]any
	for _, c := range raw {
		if m, ok := c.(map[string]any); ok {
			containers = append(containers, m)
		}
	}
	return containers
}

// TemplateLabels returns the pod template's metadata labels for controller
// resources, never nil.
func (r Resource) TemplateLabels() map[string]any {
	tmpl, _ := r.Spec()["template"].(map[string]any)
	meta, _ := tmpl["metadata"].(map[string]any)
	labels, _ := meta["labels"].(map[string]any)
	if labels == nil {
		return map[string]any{}
	}
	return labels
}

// SelectorMatchLabels returns spec.selector.matchLabels, never nil.
func (r Resource) SelectorMatchLabels() map[string]any {
	sel, _ := r.Spec()["selector"].(map[string]any)
	labels, _ := sel["matchLabels"].(map[string]any)
	if labels == nil {
		return map[string]any{}
	}
	return labels
}

func (r Resource) metadata() map[string]any {
	m, _ := r.Raw["metadata"].(map[string]any)
	if m == nil {
		return map[string]any{}
	}
	return m
}

// IsWorkload reports whether the resource carries containers we inspect.
func (r Resource) IsWorkload() bool {
	switch r.Kind() {
	case "Pod", "Deployment", "StatefulSet", "DaemonSet":
		return true
	}
	return false
}
