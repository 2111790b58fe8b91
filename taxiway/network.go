package taxiway

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/theoremus-urban-solutions/surface-nav/geo"
	"github.com/theoremus-urban-solutions/surface-nav/route"
)

// ErrNoPath is returned when two nodes are not connected.
var ErrNoPath = errors.New("no path")

const (
	// vertices are merged after rounding to 1e-7 degrees
	nodePrecision = 1e7

	defaultPathCacheSize = 128
)

type nodeKey struct {
	lon, lat int64
}

func keyOf(p orb.Point) nodeKey {
	return nodeKey{
		lon: int64(math.Round(p.Lon() * nodePrecision)),
		lat: int64(math.Round(p.Lat() * nodePrecision)),
	}
}

type edge struct {
	u, v   int
	length float64
}

// Network is an undirected taxiway graph.
type Network struct {
	nodes []geo.Coordinate
	index map[nodeKey]int
	edges []edge
	adj   [][]arc

	paths *lru.Cache[[2]int, *route.Route]
}

// LoadNetworkFile reads a GeoJSON FeatureCollection from path.
func LoadNetworkFile(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadNetwork(data)
}

// LoadNetwork parses a FeatureCollection of LineStrings (MultiLineStrings are
// split into their parts). Other geometries are skipped.
func LoadNetwork(data []byte) (*Network, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode taxiway network: %w", err)
	}

	paths, _ := lru.New[[2]int, *route.Route](defaultPathCacheSize)
	n := &Network{index: map[nodeKey]int{}, paths: paths}
	for i, f := range fc.Features {
		switch g := f.Geometry.(type) {
		case orb.LineString:
			n.addLine(g)
		case orb.MultiLineString:
			for _, ls := range g {
				n.addLine(ls)
			}
		default:
			if g == nil {
				return nil, fmt.Errorf("feature %d has no geometry", i)
			}
		}
	}
	if len(n.edges) == 0 {
		return nil, fmt.Errorf("taxiway network has no edges")
	}
	return n, nil
}

func (n *Network) node(p orb.Point) int {
	k := keyOf(p)
	if id, ok := n.index[k]; ok {
		return id
	}
	id := len(n.nodes)
	n.nodes = append(n.nodes, geo.FromPoint(p))
	n.adj = append(n.adj, nil)
	n.index[k] = id
	return id
}

func (n *Network) addLine(ls orb.LineString) {
	for i := 1; i < len(ls); i++ {
		u, v := n.node(ls[i-1]), n.node(ls[i])
		if u == v {
			continue
		}
		e := edge{u: u, v: v, length: geo.Distance(n.nodes[u], n.nodes[v])}
		n.edges = append(n.edges, e)
		n.adj[u] = append(n.adj[u], arc{to: v, length: e.length})
		n.adj[v] = append(n.adj[v], arc{to: u, length: e.length})
	}
}

// Nodes is the number of distinct vertices.
func (n *Network) Nodes() int {
	return len(n.nodes)
}

// Edges is the number of segments (each usable in both directions).
func (n *Network) Edges() int {
	return len(n.edges)
}

// Nearest returns the node closest to c and its distance in meters.
func (n *Network) Nearest(c geo.Coordinate) (int, float64) {
	best, bestDist := -1, math.Inf(1)
	for i, p := range n.nodes {
		if d := geo.HaversineKM(c.Lat, c.Lon, p.Lat, p.Lon) * geo.MetersPerKilometer; d < bestDist {
			best, bestDist = i, d
		}
	}
	return best, bestDist
}

type arc struct {
	to     int
	length float64
}

type queueItem struct {
	node int
	dist float64
}

// distQueue is a min-heap on dist.
type distQueue []queueItem

func (q distQueue) Len() int           { return len(q) }
func (q distQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q distQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x any)        { *q = append(*q, x.(queueItem)) }
func (q *distQueue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// shortest runs Dijkstra from u and stops once v is settled. prev is -1 for
// nodes that were never reached.
func (n *Network) shortest(u, v int) (float64, []int) {
	dist := make([]float64, len(n.nodes))
	prev := make([]int, len(n.nodes))
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = -1
	}
	dist[u] = 0
	prev[u] = u

	q := &distQueue{{node: u}}
	for q.Len() > 0 {
		it := heap.Pop(q).(queueItem)
		if it.dist > dist[it.node] {
			continue
		}
		if it.node == v {
			break
		}
		for _, a := range n.adj[it.node] {
			if d := it.dist + a.length; d < dist[a.to] {
				dist[a.to] = d
				prev[a.to] = it.node
				heap.Push(q, queueItem{node: a.to, dist: d})
			}
		}
	}
	return dist[v], prev
}

// Distance is the shortest network distance in meters between two nodes.
func (n *Network) Distance(u, v int) float64 {
	d, _ := n.shortest(u, v)
	return d
}

func (n *Network) reconstruct(prev []int, u, v int) []geo.Coordinate {
	var rev []int
	for at := v; at != u; at = prev[at] {
		if prev[at] < 0 {
			return nil
		}
		rev = append(rev, at)
	}
	coords := make([]geo.Coordinate, 0, len(rev)+1)
	coords = append(coords, n.nodes[u])
	for i := len(rev) - 1; i >= 0; i-- {
		coords = append(coords, n.nodes[rev[i]])
	}
	return coords
}

// FindPath snaps from and to onto their nearest nodes and returns the
// shortest route between them. If both snap to the same node the route has a
// single point.
func (n *Network) FindPath(from, to geo.Coordinate) (*route.Route, error) {
	u, _ := n.Nearest(from)
	v, _ := n.Nearest(to)
	if u < 0 || v < 0 {
		return nil, ErrNoPath
	}

	key := [2]int{u, v}
	if r, ok := n.paths.Get(key); ok {
		return r, nil
	}

	d, prev := n.shortest(u, v)
	if math.IsInf(d, 1) {
		return nil, fmt.Errorf("%w from %s to %s", ErrNoPath, n.nodes[u], n.nodes[v])
	}
	coords := n.reconstruct(prev, u, v)
	if coords == nil {
		return nil, fmt.Errorf("%w from %s to %s", ErrNoPath, n.nodes[u], n.nodes[v])
	}
	r, err := route.New(fmt.Sprintf("taxi-%d-%d", u, v), coords)
	if err != nil {
		return nil, err
	}
	n.paths.Add(key, r)
	return r, nil
}
