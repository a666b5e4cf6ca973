package k8s

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	v1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
)

// Function vars so tests can swap out cluster access
var (
	inClusterConfig      = rest.InClusterConfig
	buildConfigFromFlags = clientcmd.BuildConfigFromFlags
	newForConfig         = kubernetes.NewForConfig
)

// Client talks to the cluster holding the edited resources. Operator credentials
// live in Namespace.
type Client struct {
	ClientSet kubernetes.Interface
	Context   context.Context
	Namespace string
	Logger    *zap.Logger
}

// NewClient prefers the in-cluster config and falls back to kubeconfigPath,
// or ~/.kube/config when the path is empty.
func NewClient(ctx context.Context, kubeconfigPath, namespace string, logger *zap.Logger) (*Client, error) {
	config, err := inClusterConfig()
	if err != nil {
		if kubeconfigPath == "" {
			kubeconfigPath = filepath.Join(os.Getenv("HOME"), ".kube", "config")
		}
		config, err = buildConfigFromFlags("", kubeconfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
		}
	}

	return NewClientWithConfig(ctx, config, namespace, logger)
}

// NewClientWithConfig builds a client from an explicit rest config (envtest, tests)
func NewClientWithConfig(ctx context.Context, config *rest.Config, namespace string, logger *zap.Logger) (*Client, error) {
	clientset, err := newForConfig(config)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{ClientSet: clientset, Context: ctx, Namespace: namespace, Logger: logger}, nil
}

func (c *Client) ctx() context.Context {
	if c.Context != nil {
		return c.Context
	}
	return context.Background()
}

// EnsureNamespace creates the namespace if needed and waits until it is Active.
func (c *Client) EnsureNamespace(name string) error {
	ctx := c.ctx()

	ns := &v1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: name}}
	_, err := c.ClientSet.CoreV1().Namespaces().Create(ctx, ns, metav1.CreateOptions{})
	if apierrors.IsAlreadyExists(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create namespace %q: %w", name, err)
	}

	timeout := 10 * time.Second
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		got, err := c.ClientSet.CoreV1().Namespaces().Get(ctx, name, metav1.GetOptions{})
		if err == nil && (got.Status.Phase == v1.NamespaceActive || got.Status.Phase == "") {
			c.Logger.Info("namespace ready", zap.String("namespace", name))
			return nil
		}
		time.Sleep(200 * time.Millisecond)
	}

	return fmt.Errorf("namespace %q did not become Active within %s", name, timeout)
}
