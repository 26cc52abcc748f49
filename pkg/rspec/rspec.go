// Package rspec models GENI v3 request RSpecs with the emulab extensions
// CloudLab understands.
package rspec

import (
	"fmt"

	"github.com/icza/gog"
)

const (
	NamespaceRSpec  = "http://www.geni.net/resources/rspec/3"
	NamespaceClient = "http://www.protogeni.net/resources/rspec/ext/client/1"
	NamespaceEmulab = "http://www.protogeni.net/resources/rspec/ext/emulab/1"
	NamespaceXSI    = "http://www.w3.org/2001/XMLSchema-instance"
	SchemaLocation  = NamespaceRSpec + " " + NamespaceRSpec + "/request.xsd"

	SliverTypeRawPC = "raw-pc"
	LinkTypeLAN     = "lan"
)

// Request is the root of a request RSpec.
type Request struct {
	Nodes           []*Node
	Links           []*Link
	nodesByClientID map[string]*Node
}

// Node is a physical machine requested from the testbed.
type Node struct {
	ClientID          string
	Exclusive         bool
	SliverType        SliverType
	Services          *Services
	Interfaces        []*Interface
	RoutableControlIP *Flag
	Blockstores       []*Blockstore
}

type SliverType struct {
	Name      string
	DiskImage *DiskImage
}

type DiskImage struct {
	Name string
}

type Services struct {
	Execute []Execute
}

// Execute is a command the node runs once it has booted.
type Execute struct {
	Shell   string
	Command string
}

// Interface is a network interface of a node. It belongs to at most one link.
type Interface struct {
	ClientID string
	IP       *IP
	node     *Node
}

type IP struct {
	Address string
	Netmask string
	Type    string
}

// Blockstore is an extra storage volume mounted on a node.
type Blockstore struct {
	Name       string
	MountPoint string
	Class      string
	Size       string
	Placement  string
	Persistent bool
}

// Link is a LAN or a shared VLAN connecting a set of interfaces.
type Link struct {
	ClientID         string
	InterfaceRefs    []InterfaceRef
	BestEffort       *Toggle
	VlanTagging      *Toggle
	LinkMultiplexing *Toggle
	CreateSharedVlan *SharedVlan
	SharedVlan       *SharedVlan
	LinkType         *LinkType
	interfaces       []*Interface
}

type InterfaceRef struct {
	ClientID string
}

type Toggle struct {
	Enabled bool
}

// Flag is an element whose presence is the value.
type Flag struct{}

type SharedVlan struct {
	Name string
}

type LinkType struct {
	Name string
}

// NewRequest returns an empty request.
func NewRequest() *Request {
	return &Request{
		nodesByClientID: make(map[string]*Node),
	}
}

// RawPC adds an exclusive bare metal node.
func (r *Request) RawPC(name string) *Node {
	n := &Node{
		ClientID:   name,
		Exclusive:  true,
		SliverType: SliverType{Name: SliverTypeRawPC},
	}
	r.Nodes = append(r.Nodes, n)
	r.nodesByClientID[name] = n
	return n
}

// LAN adds a broadcast domain.
func (r *Request) LAN(name string) *Link {
	l := &Link{
		ClientID: name,
		LinkType: &LinkType{Name: LinkTypeLAN},
	}
	r.Links = append(r.Links, l)
	return l
}

// Node returns the node with the given client id, or nil.
func (r *Request) Node(name string) *Node {
	return r.nodesByClientID[name]
}

// SetDiskImage sets the image the node boots.
func (n *Node) SetDiskImage(urn string) {
	n.SliverType.DiskImage = &DiskImage{Name: urn}
}

// DiskImage returns the image URN of the node, or the empty string.
func (n *Node) DiskImage() string {
	if n.SliverType.DiskImage == nil {
		return ""
	}
	return n.SliverType.DiskImage.Name
}

// SetRoutableControlIP requests a publicly routable control network address.
func (n *Node) SetRoutableControlIP(routable bool) {
	if routable {
		n.RoutableControlIP = gog.Ptr(Flag{})
	} else {
		n.RoutableControlIP = nil
	}
}

// AddInterface adds a new interface named "<node>:if<k>".
func (n *Node) AddInterface() *Interface {
	iface := &Interface{
		ClientID: fmt.Sprintf("%s:if%d", n.ClientID, len(n.Interfaces)),
		node:     n,
	}
	n.Interfaces = append(n.Interfaces, iface)
	return iface
}

// Blockstore adds a local block store mounted at mountPoint.
func (n *Node) Blockstore(name, mountPoint string) *Blockstore {
	bs := &Blockstore{
		Name:       name,
		MountPoint: mountPoint,
		Class:      "local",
		Placement:  "any",
	}
	n.Blockstores = append(n.Blockstores, bs)
	return bs
}

// AddService appends a boot command.
func (n *Node) AddService(e Execute) {
	if n.Services == nil {
		n.Services = &Services{}
	}
	n.Services.Execute = append(n.Services.Execute, e)
}

// Commands returns the boot commands in the order they were added.
func (n *Node) Commands() []string {
	if n.Services == nil {
		return nil
	}

	result := make([]string, 0, len(n.Services.Execute))
	for _, e := range n.Services.Execute {
		result = append(result, e.Command)
	}
	return result
}

// Shell returns an Execute running command with sh.
func Shell(command string) Execute {
	return Execute{Shell: "sh", Command: command}
}

// Node returns the node the interface belongs to.
func (i *Interface) Node() *Node {
	return i.node
}

// SetIPv4 assigns a static address to the interface.
func (i *Interface) SetIPv4(address, netmask string) {
	i.IP = &IP{Address: address, Netmask: netmask, Type: "ipv4"}
}

// AddInterface attaches iface to the link.
func (l *Link) AddInterface(iface *Interface) {
	l.interfaces = append(l.interfaces, iface)
	l.InterfaceRefs = append(l.InterfaceRefs, InterfaceRef{ClientID: iface.ClientID})
}

// Interfaces returns the attached interfaces.
func (l *Link) Interfaces() []*Interface {
	return l.interfaces
}

func (l *Link) SetBestEffort(b bool)       { l.BestEffort = gog.Ptr(Toggle{Enabled: b}) }
func (l *Link) SetVlanTagging(b bool)      { l.VlanTagging = gog.Ptr(Toggle{Enabled: b}) }
func (l *Link) SetLinkMultiplexing(b bool) { l.LinkMultiplexing = gog.Ptr(Toggle{Enabled: b}) }

// CreateSharedVlanNamed makes the link a new shared VLAN other experiments can join.
func (l *Link) CreateSharedVlanNamed(name string) {
	l.CreateSharedVlan = &SharedVlan{Name: name}
	l.SharedVlan = nil
}

// ConnectSharedVlan joins an existing shared VLAN.
func (l *Link) ConnectSharedVlan(name string) {
	l.SharedVlan = &SharedVlan{Name: name}
	l.CreateSharedVlan = nil
}
