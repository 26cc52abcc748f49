package rspec

import (
	"errors"
	"fmt"
)

// Validate checks the structural invariants of the request:
// client ids are unique, every interface ref names an interface of a node in
// the request and sits on at most one link, and no node contributes more
// than one interface to a link.
func (r *Request) Validate() error {
	if len(r.Nodes) == 0 {
		return errors.New("request has no nodes")
	}

	ids := make(map[string]struct{})
	ifaces := make(map[string]*Interface)
	usedBy := make(map[string]string)

	for _, n := range r.Nodes {
		if _, ok := ids[n.ClientID]; ok {
			return fmt.Errorf("duplicate client id %s", n.ClientID)
		}
		ids[n.ClientID] = struct{}{}

		if n.DiskImage() == "" {
			return fmt.Errorf("node %s has no disk image", n.ClientID)
		}

		for _, iface := range n.Interfaces {
			ifaces[iface.ClientID] = iface
		}
	}

	for _, l := range r.Links {
		if _, ok := ids[l.ClientID]; ok {
			return fmt.Errorf("duplicate client id %s", l.ClientID)
		}
		ids[l.ClientID] = struct{}{}

		if l.CreateSharedVlan != nil && l.SharedVlan != nil {
			return fmt.Errorf("link %s both creates and connects a shared vlan", l.ClientID)
		}

		members := make(map[string]struct{})
		for _, ref := range l.InterfaceRefs {
			iface, ok := ifaces[ref.ClientID]
			if !ok {
				return fmt.Errorf("link %s references unknown interface %s", l.ClientID, ref.ClientID)
			}

			if other, ok := usedBy[ref.ClientID]; ok {
				return fmt.Errorf("interface %s is attached to links %s and %s", ref.ClientID, other, l.ClientID)
			}
			usedBy[ref.ClientID] = l.ClientID

			node := iface.Node().ClientID
			if _, ok := members[node]; ok {
				return fmt.Errorf("node %s has more than one interface on link %s", node, l.ClientID)
			}
			members[node] = struct{}{}
		}
	}

	return nil
}
