package rspec

import (
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImage = "urn:publicid:IDN+emulab.net+image+emulab-ops//UBUNTU22-64-STD"

func twoNodeRequest() *Request {
	r := NewRequest()
	lan := r.LAN("lan")
	lan.SetBestEffort(true)
	lan.SetVlanTagging(true)
	lan.SetLinkMultiplexing(true)

	for _, name := range []string{"server", "client"} {
		n := r.RawPC(name)
		n.SetDiskImage(testImage)
		lan.AddInterface(n.AddInterface())
	}

	return r
}

func TestRequest_Encode(t *testing.T) {
	t.Parallel()

	r := twoNodeRequest()
	server := r.Node("server")
	server.SetRoutableControlIP(true)
	bs := server.Blockstore("nfsBS", "/nfs")
	bs.Size = "200GB"
	bs.Persistent = true
	server.AddService(Shell("sudo /bin/bash /local/repository/nfs-server.sh --allowed-networks='10.0.0.0/8'"))

	out, err := r.Bytes()
	require.NoError(t, err)
	doc := string(out)

	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, doc, `<rspec xmlns="http://www.geni.net/resources/rspec/3"`)
	assert.Contains(t, doc, `xmlns:emulab="http://www.protogeni.net/resources/rspec/ext/emulab/1"`)
	assert.Contains(t, doc, `type="request"`)
	assert.Contains(t, doc, `<node client_id="server" exclusive="true">`)
	assert.Contains(t, doc, `<sliver_type name="raw-pc">`)
	assert.Contains(t, doc, `<disk_image name="`+testImage+`"/>`)
	assert.Contains(t, doc, `<interface client_id="server:if0"/>`)
	assert.Contains(t, doc, `<emulab:routable_control_ip/>`)
	assert.Contains(t, doc, `<emulab:blockstore name="nfsBS" mountpoint="/nfs" class="local" size="200GB" placement="any" persistent="true"/>`)
	assert.Contains(t, doc, `<interface_ref client_id="server:if0"/>`)
	assert.Contains(t, doc, `<interface_ref client_id="client:if0"/>`)
	assert.Contains(t, doc, `<emulab:vlan_tagging enabled="true"/>`)
	assert.Contains(t, doc, `<link_type name="lan"/>`)

	assert.True(t, strings.HasSuffix(doc, "</rspec>\n"))
	assert.Equal(t, 1, strings.Count(doc, "<?xml"))

	// the client has neither services nor extra storage
	clientStart := strings.Index(doc, `<node client_id="client"`)
	clientEnd := strings.Index(doc[clientStart:], `</node>`)
	client := doc[clientStart : clientStart+clientEnd]
	assert.NotContains(t, client, "services")
	assert.NotContains(t, client, "blockstore")
	assert.NotContains(t, client, "routable_control_ip")
}

func TestRequest_EncodeReadsBack(t *testing.T) {
	t.Parallel()

	command := `sudo /bin/bash /local/repository/nfs-server.sh --allowed-networks='10.0.0.0/8 192.168.0.0/16' && echo "<done>"`

	r := twoNodeRequest()
	r.Node("server").AddService(Shell(command))
	r.Node("server").Blockstore("nfsBS", "/nfs").Size = "1TB"

	out, err := r.Bytes()
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "rspec", root.Tag)
	assert.Equal(t, "request", root.SelectAttrValue("type", ""))
	assert.Len(t, root.SelectElements("node"), 2)
	assert.Len(t, root.SelectElements("link"), 1)

	execute := doc.FindElement("//node[@client_id='server']/services/execute")
	require.NotNil(t, execute)
	assert.Equal(t, "sh", execute.SelectAttrValue("shell", ""))
	assert.Equal(t, command, execute.SelectAttrValue("command", ""))

	bs := doc.FindElement("//node[@client_id='server']/emulab:blockstore")
	require.NotNil(t, bs)
	assert.Equal(t, "1TB", bs.SelectAttrValue("size", ""))
	assert.Nil(t, bs.SelectAttr("persistent"))

	refs := doc.FindElements("//link/interface_ref")
	require.Len(t, refs, 2)
	assert.Equal(t, "server:if0", refs[0].SelectAttrValue("client_id", ""))
	assert.Equal(t, "client:if0", refs[1].SelectAttrValue("client_id", ""))
}

func TestRequest_EncodeSharedVlan(t *testing.T) {
	t.Parallel()

	r := NewRequest()
	n := r.RawPC("node0")
	n.SetDiskImage(testImage)
	iface := n.AddInterface()
	iface.SetIPv4("10.10.1.1", "255.255.255.0")

	vlan := r.LAN("vlan0")
	vlan.AddInterface(iface)
	vlan.CreateSharedVlanNamed("my-vlan")

	out, err := r.Bytes()
	require.NoError(t, err)
	doc := string(out)
	assert.Contains(t, doc, `<ip address="10.10.1.1" netmask="255.255.255.0" type="ipv4"/>`)
	assert.Contains(t, doc, `<emulab:create_shared_vlan name="my-vlan"/>`)
	assert.NotContains(t, doc, `<emulab:shared_vlan`)

	vlan.ConnectSharedVlan("other-vlan")
	out, err = r.Bytes()
	require.NoError(t, err)
	doc = string(out)
	assert.Contains(t, doc, `<emulab:shared_vlan name="other-vlan"/>`)
	assert.NotContains(t, doc, `create_shared_vlan`)
}

func TestNode_Helpers(t *testing.T) {
	t.Parallel()

	r := NewRequest()
	n := r.RawPC("node0")
	assert.Equal(t, "", n.DiskImage())
	assert.Nil(t, n.Commands())

	n.SetDiskImage(testImage)
	assert.Equal(t, testImage, n.DiskImage())

	n.AddService(Shell("first"))
	n.AddService(Shell("second"))
	assert.Equal(t, []string{"first", "second"}, n.Commands())

	a := n.AddInterface()
	b := n.AddInterface()
	assert.Equal(t, "node0:if0", a.ClientID)
	assert.Equal(t, "node0:if1", b.ClientID)
	assert.Same(t, n, b.Node())

	n.SetRoutableControlIP(true)
	assert.NotNil(t, n.RoutableControlIP)
	n.SetRoutableControlIP(false)
	assert.Nil(t, n.RoutableControlIP)

	assert.Same(t, n, r.Node("node0"))
	assert.Nil(t, r.Node("node1"))
}

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		mutate  func(r *Request)
		wantErr string
	}{{
		name:   "valid",
		mutate: func(r *Request) {},
	}, {
		name: "duplicate node",
		mutate: func(r *Request) {
			r.RawPC("server").SetDiskImage(testImage)
		},
		wantErr: "duplicate client id server",
	}, {
		name: "link named like a node",
		mutate: func(r *Request) {
			r.LAN("client")
		},
		wantErr: "duplicate client id client",
	}, {
		name: "missing image",
		mutate: func(r *Request) {
			r.RawPC("third")
		},
		wantErr: "node third has no disk image",
	}, {
		name: "two interfaces of one node on a link",
		mutate: func(r *Request) {
			r.Links[0].AddInterface(r.Node("server").AddInterface())
		},
		wantErr: "node server has more than one interface on link lan",
	}, {
		name: "interface on two links",
		mutate: func(r *Request) {
			r.LAN("other").AddInterface(r.Node("server").Interfaces[0])
		},
		wantErr: "interface server:if0 is attached to links lan and other",
	}, {
		name: "unknown interface",
		mutate: func(r *Request) {
			r.Links[0].InterfaceRefs = append(r.Links[0].InterfaceRefs, InterfaceRef{ClientID: "ghost:if0"})
		},
		wantErr: "link lan references unknown interface ghost:if0",
	}, {
		name: "create and connect",
		mutate: func(r *Request) {
			r.Links[0].CreateSharedVlan = &SharedVlan{Name: "a"}
			r.Links[0].SharedVlan = &SharedVlan{Name: "b"}
		},
		wantErr: "link lan both creates and connects a shared vlan",
	}}

	for i := range cases {
		tcase := &cases[i]
		t.Run(tcase.name, func(t *testing.T) {
			t.Parallel()

			r := twoNodeRequest()
			tcase.mutate(r)
			err := r.Validate()
			if tcase.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tcase.wantErr)
			}
		})
	}

	assert.EqualError(t, NewRequest().Validate(), "request has no nodes")
}
