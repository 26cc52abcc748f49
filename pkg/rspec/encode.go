package rspec

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"github.com/beevik/etree"
)

const indentSpaces = 2

// Document builds the XML tree of the request.
func (r *Request) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("rspec")
	root.CreateAttr("xmlns", NamespaceRSpec)
	root.CreateAttr("xmlns:client", NamespaceClient)
	root.CreateAttr("xmlns:emulab", NamespaceEmulab)
	root.CreateAttr("xmlns:xsi", NamespaceXSI)
	root.CreateAttr("xsi:schemaLocation", SchemaLocation)
	root.CreateAttr("type", "request")

	for _, n := range r.Nodes {
		n.appendTo(root)
	}
	for _, l := range r.Links {
		l.appendTo(root)
	}

	return doc
}

func (n *Node) appendTo(parent *etree.Element) {
	elem := parent.CreateElement("node")
	elem.CreateAttr("client_id", n.ClientID)
	elem.CreateAttr("exclusive", strconv.FormatBool(n.Exclusive))

	sliver := elem.CreateElement("sliver_type")
	sliver.CreateAttr("name", n.SliverType.Name)
	if n.SliverType.DiskImage != nil {
		sliver.CreateElement("disk_image").CreateAttr("name", n.SliverType.DiskImage.Name)
	}

	if n.Services != nil && len(n.Services.Execute) > 0 {
		services := elem.CreateElement("services")
		for _, e := range n.Services.Execute {
			execute := services.CreateElement("execute")
			execute.CreateAttr("shell", e.Shell)
			execute.CreateAttr("command", e.Command)
		}
	}

	for _, iface := range n.Interfaces {
		ie := elem.CreateElement("interface")
		ie.CreateAttr("client_id", iface.ClientID)
		if iface.IP != nil {
			ip := ie.CreateElement("ip")
			ip.CreateAttr("address", iface.IP.Address)
			ip.CreateAttr("netmask", iface.IP.Netmask)
			ip.CreateAttr("type", iface.IP.Type)
		}
	}

	if n.RoutableControlIP != nil {
		elem.CreateElement("emulab:routable_control_ip")
	}

	for _, bs := range n.Blockstores {
		be := elem.CreateElement("emulab:blockstore")
		be.CreateAttr("name", bs.Name)
		be.CreateAttr("mountpoint", bs.MountPoint)
		be.CreateAttr("class", bs.Class)
		be.CreateAttr("size", bs.Size)
		be.CreateAttr("placement", bs.Placement)
		if bs.Persistent {
			be.CreateAttr("persistent", "true")
		}
	}
}

func (l *Link) appendTo(parent *etree.Element) {
	elem := parent.CreateElement("link")
	elem.CreateAttr("client_id", l.ClientID)

	for _, ref := range l.InterfaceRefs {
		elem.CreateElement("interface_ref").CreateAttr("client_id", ref.ClientID)
	}

	toggle := func(tag string, t *Toggle) {
		if t != nil {
			elem.CreateElement(tag).CreateAttr("enabled", strconv.FormatBool(t.Enabled))
		}
	}
	toggle("emulab:best_effort", l.BestEffort)
	toggle("emulab:vlan_tagging", l.VlanTagging)
	toggle("emulab:link_multiplexing", l.LinkMultiplexing)

	if l.CreateSharedVlan != nil {
		elem.CreateElement("emulab:create_shared_vlan").CreateAttr("name", l.CreateSharedVlan.Name)
	}
	if l.SharedVlan != nil {
		elem.CreateElement("emulab:shared_vlan").CreateAttr("name", l.SharedVlan.Name)
	}

	if l.LinkType != nil {
		elem.CreateElement("link_type").CreateAttr("name", l.LinkType.Name)
	}
}

// Encode writes the request as an indented XML document ending in a newline.
func (r *Request) Encode(w io.Writer) error {
	b, err := r.Bytes()
	if err != nil {
		return err
	}

	_, err = w.Write(b)
	return err
}

// Bytes returns the encoded request.
func (r *Request) Bytes() ([]byte, error) {
	doc := r.Document()
	doc.Indent(indentSpaces)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	return append(bytes.TrimRight(out, "\n"), '\n'), nil
}
